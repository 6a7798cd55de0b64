package services

import (
	"errors"

	"github.com/localnerve/publishing-house/internal/models"
	"github.com/localnerve/publishing-house/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// salesQuery tags report queries so they can be picked out of the store's
// statement logs.
func salesQuery(db *gorm.DB, name string) *gorm.DB {
	return db.Model(&models.SalesRecord{}).Clauses(hints.Comment("select", name))
}

// YearBounds holds the earliest and latest year with recorded sales.
type YearBounds struct {
	MinYear *int64
	MaxYear *int64
}

// SalesYearBounds returns the recorded year range. Both ends are nil when
// there are no sales records.
func SalesYearBounds(db *gorm.DB) (YearBounds, error) {
	var b YearBounds
	err := salesQuery(db, "sales_year_bounds").
		Select("MIN(year) AS min_year, MAX(year) AS max_year").
		Scan(&b).Error
	return b, err
}

// SalesRecordsByYear returns the year's records ordered by month then book.
// A year with no records is a validation error naming the recorded range,
// and a table with no records at all is not found.
func SalesRecordsByYear(db *gorm.DB, year int64) ([]models.SalesRecord, error) {
	var rows []models.SalesRecord
	if err := salesQuery(db, "sales_by_year").
		Where("year = ?", year).
		Order("year, month, book_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows, nil
	}

	b, err := SalesYearBounds(db)
	if err != nil {
		return nil, err
	}
	if b.MinYear == nil || b.MaxYear == nil {
		return nil, types.NotFound("no sales records")
	}
	return nil, types.Validation("parameter year = %d is not in [%d, %d]", year, *b.MinYear, *b.MaxYear)
}

// SalesRecordsByMonth returns the month's records ordered by book.
func SalesRecordsByMonth(db *gorm.DB, year, month int64) ([]models.SalesRecord, error) {
	var rows []models.SalesRecord
	if err := salesQuery(db, "sales_by_month").
		Where("year = ? AND month = ?", year, month).
		Order("year, month, book_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, types.NotFound("no sales records for %d-%02d", year, month)
	}
	return rows, nil
}

// SalesRecordsByBook returns the book's records in calendar order.
func SalesRecordsByBook(db *gorm.DB, bookID int64) ([]models.SalesRecord, error) {
	var rows []models.SalesRecord
	if err := salesQuery(db, "sales_by_book").
		Where("book_id = ?", bookID).
		Order("year, month").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, types.NotFound("no sales records for book %d", bookID)
	}
	return rows, nil
}

// SalesRecordFor returns the single record of a book for one month.
func SalesRecordFor(db *gorm.DB, year, month, bookID int64) (*models.SalesRecord, error) {
	var row models.SalesRecord
	err := salesQuery(db, "sales_for_book_month").
		Where("year = ? AND month = ? AND book_id = ?", year, month, bookID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("no sales record for book %d in %d-%02d", bookID, year, month)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
