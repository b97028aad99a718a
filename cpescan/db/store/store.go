package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/jinzhu/gorm"

	"github.com/cpescan/cpescan/cpescan/cpe"
	"github.com/cpescan/cpescan/cpescan/db"
	"github.com/cpescan/cpescan/cpescan/db/store/model"
	"github.com/cpescan/cpescan/cpescan/vulnerability"
)

// rejectedMarker appears in the description of NVD records that were
// withdrawn after publication; such records are deleted rather than updated.
const rejectedMarker = "** REJECT **"

// candidateStreamQuery produces the flattened (cve, cpe, previous_version)
// rows for one vendor/product pair. The ORDER BY is load-bearing: the
// aggregator groups contiguous runs by CVE and silently miscounts on
// unsorted input.
const candidateStreamQuery = `
SELECT v.cve, e.cpe, s.previous_version
FROM software s
INNER JOIN cpe_entry e ON e.id = s.cpe_entry_id
INNER JOIN vulnerability v ON v.id = s.vulnerability_id
WHERE e.vendor = ? AND e.product = ?
ORDER BY v.cve`

// store holds an instance of the database connection
type store struct {
	db *gorm.DB
}

// New creates a new instance of the store at the given path. When overwrite is
// set any existing file is replaced and the schema is created.
func New(dbFilePath string, overwrite bool) (db.Store, error) {
	d, err := open(config{
		dbPath:    dbFilePath,
		overwrite: overwrite,
	})
	if err != nil {
		return nil, err
	}

	if overwrite {
		for _, m := range []interface{}{
			&model.IDModel{},
			&model.VulnerabilityModel{},
			&model.ReferenceModel{},
			&model.CpeEntryModel{},
			&model.SoftwareModel{},
			&model.PropertyModel{},
		} {
			if err := d.AutoMigrate(m).Error; err != nil {
				return nil, fmt.Errorf("unable to migrate %T: %w", m, err)
			}
		}
	}

	return &store{
		db: d,
	}, nil
}

// NewReader opens an existing database for matching/enrichment only.
func NewReader(dbFilePath string) (db.StoreReader, error) {
	return New(dbFilePath, false)
}

// GetID fetches the metadata about the databases schema version and build time.
func (s *store) GetID() (*db.ID, error) {
	var models []model.IDModel
	result := s.db.Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	switch {
	case len(models) > 1:
		return nil, fmt.Errorf("found multiple DB IDs")
	case len(models) == 1:
		id, err := models[0].Inflate()
		if err != nil {
			return nil, err
		}
		return &id, nil
	}

	return nil, nil
}

// SetID stores the databases schema version and build time.
func (s *store) SetID(id db.ID) error {
	var ids []model.IDModel

	// replace the existing ID with the given one
	s.db.Find(&ids).Delete(&ids)

	m := model.NewIDModel(id)
	result := s.db.Create(&m)

	if result.RowsAffected != 1 {
		return fmt.Errorf("unable to add id (%d rows affected)", result.RowsAffected)
	}

	return result.Error
}

// CandidateStream opens a cursor over the range entries recorded for the
// vendor/product pair, ordered by CVE.
func (s *store) CandidateStream(vendor, product string) (vulnerability.CandidateStream, error) {
	rows, err := s.db.Raw(candidateStreamQuery, vendor, product).Rows()
	if err != nil {
		return nil, fmt.Errorf("unable to query candidates for vendor=%q product=%q: %w", vendor, product, err)
	}
	return &candidateStream{rows: rows}, nil
}

// GetVulnerability fetches one full vulnerability record (with references and
// vulnerable software entries), or nil when the CVE is not recorded.
func (s *store) GetVulnerability(id string) (*vulnerability.Vulnerability, error) {
	var models []model.VulnerabilityModel

	result := s.db.Where("cve = ?", id).Find(&models)
	if result.Error != nil && !gorm.IsRecordNotFoundError(result.Error) {
		return nil, result.Error
	}

	switch {
	case len(models) == 0:
		return nil, nil
	case len(models) > 1:
		return nil, fmt.Errorf("found multiple vulnerability records for %q", id)
	}

	m := models[0]
	vuln := m.Inflate()

	var refModels []model.ReferenceModel
	if err := s.db.Where("vulnerability_id = ?", m.ID).Find(&refModels).Error; err != nil {
		return nil, fmt.Errorf("unable to fetch references for %q: %w", id, err)
	}
	for _, r := range refModels {
		vuln.References = append(vuln.References, r.Inflate())
	}

	software, err := s.vulnerableSoftware(m.ID)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch software entries for %q: %w", id, err)
	}
	vuln.VulnerableSoftware = software

	return &vuln, nil
}

func (s *store) vulnerableSoftware(vulnerabilityID int) ([]cpe.Candidate, error) {
	rows, err := s.db.Raw(`
SELECT e.cpe, s.previous_version
FROM software s
INNER JOIN cpe_entry e ON e.id = s.cpe_entry_id
WHERE s.vulnerability_id = ?`, vulnerabilityID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []cpe.Candidate
	for rows.Next() {
		var cpeStr string
		var previous sql.NullString
		if err := rows.Scan(&cpeStr, &previous); err != nil {
			return nil, fmt.Errorf("unable to scan software row: %w", err)
		}
		candidates = append(candidates, cpe.NewCandidate(cpeStr, previous.Valid && previous.String != ""))
	}
	return candidates, rows.Err()
}

// AddVulnerability saves one or more vulnerabilities into the sqlite3 store.
// Existing records are replaced wholesale; we don't know which fields were
// updated upstream, so delete-then-insert is simpler than merging.
func (s *store) AddVulnerability(vulnerabilities ...vulnerability.Vulnerability) error {
	for _, vuln := range vulnerabilities {
		if err := s.addVulnerability(vuln); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) addVulnerability(vuln vulnerability.Vulnerability) error {
	var existing []model.VulnerabilityModel
	if err := s.db.Where("cve = ?", vuln.ID).Find(&existing).Error; err != nil {
		return fmt.Errorf("unable to check for existing vulnerability %q: %w", vuln.ID, err)
	}

	if len(existing) > 0 {
		vulnerabilityID := existing[0].ID
		if err := s.db.Where("vulnerability_id = ?", vulnerabilityID).Delete(&model.ReferenceModel{}).Error; err != nil {
			return fmt.Errorf("unable to delete references for %q: %w", vuln.ID, err)
		}
		if err := s.db.Where("vulnerability_id = ?", vulnerabilityID).Delete(&model.SoftwareModel{}).Error; err != nil {
			return fmt.Errorf("unable to delete software entries for %q: %w", vuln.ID, err)
		}
		if err := s.db.Where("id = ?", vulnerabilityID).Delete(&model.VulnerabilityModel{}).Error; err != nil {
			return fmt.Errorf("unable to delete vulnerability %q: %w", vuln.ID, err)
		}
	}

	// withdrawn records are removed, not re-added
	if strings.Contains(vuln.Description, rejectedMarker) {
		return nil
	}

	m := model.NewVulnerabilityModel(vuln)
	if result := s.db.Create(&m); result.Error != nil {
		return fmt.Errorf("unable to add vulnerability %q: %w", vuln.ID, result.Error)
	}

	for _, ref := range vuln.References {
		refModel := model.NewReferenceModel(m.ID, ref)
		if result := s.db.Create(&refModel); result.Error != nil {
			return fmt.Errorf("unable to add reference for %q: %w", vuln.ID, result.Error)
		}
	}

	for _, software := range vuln.VulnerableSoftware {
		if err := s.addSoftware(m.ID, software); err != nil {
			return fmt.Errorf("unable to add software entry for %q: %w", vuln.ID, err)
		}
	}
	return nil
}

func (s *store) addSoftware(vulnerabilityID int, candidate cpe.Candidate) error {
	entryID, err := s.upsertCpeEntry(candidate.CPE)
	if err != nil {
		return err
	}

	softwareModel := model.SoftwareModel{
		VulnerabilityID: vulnerabilityID,
		CpeEntryID:      entryID,
	}
	if candidate.AffectsAllPrior {
		previous := candidate.VersionText
		softwareModel.PreviousVersion = &previous
	}

	return s.db.Create(&softwareModel).Error
}

func (s *store) upsertCpeEntry(cpeStr string) (int, error) {
	var entries []model.CpeEntryModel
	if err := s.db.Where("cpe = ?", cpeStr).Find(&entries).Error; err != nil {
		return 0, err
	}
	if len(entries) > 0 {
		return entries[0].ID, nil
	}

	decoded, err := cpe.New(cpeStr)
	if err != nil {
		return 0, fmt.Errorf("unable to parse CPE for dictionary entry: %w", err)
	}

	entry := model.CpeEntryModel{
		Cpe:     cpeStr,
		Vendor:  decoded.Vendor,
		Product: decoded.Product,
	}
	if result := s.db.Create(&entry); result.Error != nil {
		return 0, result.Error
	}
	return entry.ID, nil
}

// GetProperties fetches all key-value metadata rows.
func (s *store) GetProperties() (map[string]string, error) {
	var models []model.PropertyModel
	if err := s.db.Find(&models).Error; err != nil {
		return nil, err
	}

	properties := make(map[string]string, len(models))
	for _, m := range models {
		properties[m.Key] = m.Value
	}
	return properties, nil
}

// SetProperty upserts one key-value metadata row.
func (s *store) SetProperty(key, value string) error {
	result := s.db.Model(&model.PropertyModel{}).Where("key = ?", key).Update("value", value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		m := model.PropertyModel{Key: key, Value: value}
		return s.db.Create(&m).Error
	}
	return nil
}

// DataExists indicates whether the DB holds any software entries at all.
func (s *store) DataExists() (bool, error) {
	var count int
	if err := s.db.Model(&model.CpeEntryModel{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CleanupOrphans removes rows left dangling by record replacement. All
// statements are attempted; failures are reported together.
func (s *store) CleanupOrphans() error {
	var errs error
	for _, stmt := range []string{
		`DELETE FROM software WHERE vulnerability_id NOT IN (SELECT id FROM vulnerability)`,
		`DELETE FROM reference WHERE vulnerability_id NOT IN (SELECT id FROM vulnerability)`,
		`DELETE FROM cpe_entry WHERE id NOT IN (SELECT DISTINCT cpe_entry_id FROM software)`,
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			errs = multierror.Append(errs, fmt.Errorf("cleanup statement failed (%s): %w", stmt, err))
		}
	}
	return errs
}

func (s *store) Close() error {
	return s.db.Close()
}
