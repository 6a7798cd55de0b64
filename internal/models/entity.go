package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entity is a persisted business object with an integer primary key.
//
// Assign copies validated values, keyed by column name, onto the typed fields.
// Values are the normalized forms produced by the validate package: int64,
// decimal.Decimal, string, time.Time and bool. Unknown keys are ignored.
type Entity interface {
	TableName() string
	ID() int64
	Assign(args map[string]any)
}

func asInt64(v any) int64 {
	n, _ := v.(int64)
	return n
}

func asInt64Ptr(v any) *int64 {
	n, ok := v.(int64)
	if !ok {
		return nil
	}
	return &n
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asDecimal(v any) decimal.Decimal {
	d, _ := v.(decimal.Decimal)
	return d
}

func asDate(v any) Date {
	t, _ := v.(time.Time)
	return NewDate(t)
}
