package model

const PropertyTableName = "property"

// PropertyModel is one key-value metadata row (e.g. the timestamps recorded by
// the data import pipeline).
type PropertyModel struct {
	Key   string `gorm:"column:key;primary_key"`
	Value string `gorm:"column:value"`
}

func (PropertyModel) TableName() string {
	return PropertyTableName
}
