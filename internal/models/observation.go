// Package models defines the persisted data model of the price monitor.
package models

// TimestampLayout is the fixed wall-clock format stored with every
// observation, second precision, local time.
const TimestampLayout = "2006-01-02 15:04:05"

// PriceObservation is one extracted price record for one product at one
// point in time. This is immutable time-series data — rows are only ever
// appended, never updated or deleted; the full sequence of rows is the
// price history.
//
// ProductName is the grouping key across observations of the same
// product. No normalization is applied: the trimmed title text as it
// appears on the page is the key.
type PriceObservation struct {
	ID               uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName      string `gorm:"type:text;not null;index" json:"product_name"`
	OldPrice         int64  `gorm:"type:bigint" json:"old_price"`
	NewPrice         int64  `gorm:"type:bigint;not null" json:"new_price"`
	InstallmentPrice int64  `gorm:"type:bigint" json:"installment_price"`
	Timestamp        string `gorm:"type:text;not null" json:"timestamp"`
}

// TableName maps the model onto the prices table.
func (PriceObservation) TableName() string {
	return "prices"
}

// Valid reports whether the observation may reach the store: a non-empty
// product name and a positive current price.
func (o *PriceObservation) Valid() bool {
	return o != nil && o.ProductName != "" && o.NewPrice > 0
}
