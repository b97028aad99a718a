package model

import (
	"github.com/cpescan/cpescan/cpescan/vulnerability"
)

const ReferenceTableName = "reference"

type ReferenceModel struct {
	ID              int    `gorm:"column:id;primary_key;auto_increment"`
	VulnerabilityID int    `gorm:"column:vulnerability_id;index"`
	Name            string `gorm:"column:name"`
	URL             string `gorm:"column:url"`
	Source          string `gorm:"column:source"`
}

func NewReferenceModel(vulnerabilityID int, ref vulnerability.Reference) ReferenceModel {
	return ReferenceModel{
		VulnerabilityID: vulnerabilityID,
		Name:            ref.Name,
		URL:             ref.URL,
		Source:          ref.Source,
	}
}

func (ReferenceModel) TableName() string {
	return ReferenceTableName
}

func (m ReferenceModel) Inflate() vulnerability.Reference {
	return vulnerability.Reference{
		Name:   m.Name,
		URL:    m.URL,
		Source: m.Source,
	}
}
