package model

const SoftwareTableName = "software"

// SoftwareModel joins a vulnerability to one CPE dictionary entry. A non-empty
// PreviousVersion marks the entry as covering the recorded version and all
// earlier versions.
type SoftwareModel struct {
	VulnerabilityID int     `gorm:"column:vulnerability_id;index"`
	CpeEntryID      int     `gorm:"column:cpe_entry_id;index"`
	PreviousVersion *string `gorm:"column:previous_version"`
}

func (SoftwareModel) TableName() string {
	return SoftwareTableName
}

func (m SoftwareModel) AffectsAllPrior() bool {
	return m.PreviousVersion != nil && *m.PreviousVersion != ""
}
