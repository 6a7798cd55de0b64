package models

import "github.com/shopspring/decimal"

// SalesRecord is the monthly sales tally of one book. Rows are loaded out of
// band and never written through the API.
type SalesRecord struct {
	SalesRecordID int64           `gorm:"primaryKey;autoIncrement" json:"sales_record_id"`
	BookID        int64           `gorm:"not null;index;uniqueIndex:idx_sales_records_period,priority:1" json:"book_id"`
	Year          int64           `gorm:"not null;uniqueIndex:idx_sales_records_period,priority:2" json:"year"`
	Month         int64           `gorm:"not null;uniqueIndex:idx_sales_records_period,priority:3" json:"month"`
	CopiesSold    int64           `gorm:"not null" json:"copies_sold"`
	GrossProfit   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"gross_profit"`
	NetProfit     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"net_profit"`
}

// TableName overrides the table name for SalesRecord
func (SalesRecord) TableName() string { return "sales_records" }

func (s *SalesRecord) ID() int64 { return s.SalesRecordID }

// Assign is a no-op; sales records are immutable through the API.
func (s *SalesRecord) Assign(map[string]any) {}

// All lists every model in dependency order, for migrations. Foreign keys
// are declared on the referenced model as has-one/has-many associations, so
// the referenced models must be migrated in the same call as the tables
// holding the keys.
func All() []any {
	return []any{
		&Author{},
		&Editor{},
		&Series{},
		&Salesperson{},
		&AuthorMetadata{},
		&Book{},
		&Manuscript{},
		&Client{},
		&AuthorBook{},
		&AuthorManuscript{},
		&SalesRecord{},
	}
}
