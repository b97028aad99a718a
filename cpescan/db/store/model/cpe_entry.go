package model

const CpeEntryTableName = "cpe_entry"

// CpeEntryModel is one product identifier from the CPE dictionary. The
// vendor/product columns are denormalized out of the identifier string to
// serve the candidate lookup without string parsing in SQL.
type CpeEntryModel struct {
	ID      int    `gorm:"column:id;primary_key;auto_increment"`
	Cpe     string `gorm:"column:cpe;unique_index"`
	Vendor  string `gorm:"column:vendor;index:idx_cpe_entry_vendor_product"`
	Product string `gorm:"column:product;index:idx_cpe_entry_vendor_product"`
}

func (CpeEntryModel) TableName() string {
	return CpeEntryTableName
}
