package model

import (
	"github.com/cpescan/cpescan/cpescan/vulnerability"
)

const VulnerabilityTableName = "vulnerability"

type VulnerabilityModel struct {
	ID                        int     `gorm:"column:id;primary_key;auto_increment"`
	Cve                       string  `gorm:"column:cve;unique_index"`
	Description               string  `gorm:"column:description"`
	Cwe                       string  `gorm:"column:cwe"`
	CvssScore                 float64 `gorm:"column:cvss_score"`
	CvssAccessVector          string  `gorm:"column:cvss_access_vector"`
	CvssAccessComplexity      string  `gorm:"column:cvss_access_complexity"`
	CvssAuthentication        string  `gorm:"column:cvss_authentication"`
	CvssConfidentialityImpact string  `gorm:"column:cvss_confidentiality_impact"`
	CvssIntegrityImpact       string  `gorm:"column:cvss_integrity_impact"`
	CvssAvailabilityImpact    string  `gorm:"column:cvss_availability_impact"`
}

func NewVulnerabilityModel(vuln vulnerability.Vulnerability) VulnerabilityModel {
	return VulnerabilityModel{
		Cve:                       vuln.ID,
		Description:               vuln.Description,
		Cwe:                       vuln.Cwe,
		CvssScore:                 vuln.Cvss.Score,
		CvssAccessVector:          vuln.Cvss.AccessVector,
		CvssAccessComplexity:      vuln.Cvss.AccessComplexity,
		CvssAuthentication:        vuln.Cvss.Authentication,
		CvssConfidentialityImpact: vuln.Cvss.ConfidentialityImpact,
		CvssIntegrityImpact:       vuln.Cvss.IntegrityImpact,
		CvssAvailabilityImpact:    vuln.Cvss.AvailabilityImpact,
	}
}

func (VulnerabilityModel) TableName() string {
	return VulnerabilityTableName
}

// Inflate produces the vulnerability record carried by this row alone;
// references and vulnerable-software entries live in their own tables and are
// attached by the store.
func (m VulnerabilityModel) Inflate() vulnerability.Vulnerability {
	return vulnerability.Vulnerability{
		ID:          m.Cve,
		Description: m.Description,
		Cwe:         m.Cwe,
		Cvss: vulnerability.Cvss{
			Score:                 m.CvssScore,
			AccessVector:          m.CvssAccessVector,
			AccessComplexity:      m.CvssAccessComplexity,
			Authentication:        m.CvssAuthentication,
			ConfidentialityImpact: m.CvssConfidentialityImpact,
			IntegrityImpact:       m.CvssIntegrityImpact,
			AvailabilityImpact:    m.CvssAvailabilityImpact,
		},
	}
}
