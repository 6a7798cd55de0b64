package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func init() {
	// Money columns serialize as JSON numbers, matching what clients send.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout is the wire and display format of Date.
const DateLayout = "2006-01-02"

// Date is a wrapper around gorm.io/datatypes.Date that serializes as YYYY-MM-DD
// and tolerates drivers that hand back dates as text.
type Date struct {
	datatypes.Date
}

// NewDate returns the Date for t's calendar day.
func NewDate(t time.Time) Date {
	return Date{datatypes.Date(t)}
}

// Time returns the date as a time.Time.
func (d Date) Time() time.Time {
	return time.Time(d.Date)
}

func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

// Value promotes the embedded Date's Value method
func (d Date) Value() (driver.Value, error) {
	return d.Date.Value()
}

// Scan accepts time values as well as the text forms SQLite drivers produce.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	}
	return d.Date.Scan(value)
}

func (d *Date) parse(s string) error {
	layouts := []string{DateLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			*d = NewDate(t)
			return nil
		}
	}
	return fmt.Errorf("models.Date: cannot parse %q", s)
}

// MarshalJSON writes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON reads a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("models.Date: %w", err)
	}
	*d = NewDate(t)
	return nil
}

// GormDBDataType ensures every supported driver stores a calendar date.
func (Date) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return "date"
}
