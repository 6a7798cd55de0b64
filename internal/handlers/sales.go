package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishing-house/internal/services"
	"github.com/localnerve/publishing-house/internal/types"
	"github.com/localnerve/publishing-house/internal/validate"
	"gorm.io/gorm"
)

// Path parameters of the sales record reports.
const (
	ParamYear  = "year"
	ParamMonth = "month"
	ParamBook  = "book"
)

// SalesHandler serves the read-only sales record reports
type SalesHandler struct {
	DB *gorm.DB
}

func pathInt(c *fiber.Ctx, name string, r validate.IntRange) (int64, error) {
	v, err := validate.Integer(name, c.Params(name), r)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, types.BadRequest("missing path parameter %s", name)
	}
	return *v, nil
}

// ByYear handles GET /sales_records/years/:year
// @Summary Sales records of a year
// @Description Records of one year ordered by month then book. A year with no records is a 400 naming the recorded range; an empty table is a 404.
// @Tags SalesRecords
// @Produce json
// @Param year path int true "Year"
// @Success 200 {array} models.SalesRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /sales_records/years/{year} [get]
func (h *SalesHandler) ByYear(c *fiber.Ctx) error {
	year, err := pathInt(c, ParamYear, validate.IntRange{})
	if err != nil {
		return err
	}
	rows, err := services.SalesRecordsByYear(session(c, h.DB), year)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// ByMonth handles GET /sales_records/years/:year/months/:month
// @Summary Sales records of a month
// @Tags SalesRecords
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {array} models.SalesRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /sales_records/years/{year}/months/{month} [get]
func (h *SalesHandler) ByMonth(c *fiber.Ctx) error {
	year, err := pathInt(c, ParamYear, validate.IntRange{})
	if err != nil {
		return err
	}
	month, err := pathInt(c, ParamMonth, validate.IntBetween(1, 12))
	if err != nil {
		return err
	}
	rows, err := services.SalesRecordsByMonth(session(c, h.DB), year, month)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// ByBook handles GET /sales_records/books/:book
// @Summary Sales records of a book
// @Tags SalesRecords
// @Produce json
// @Param book path int true "Book ID"
// @Success 200 {array} models.SalesRecord
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /sales_records/books/{book} [get]
func (h *SalesHandler) ByBook(c *fiber.Ctx) error {
	book, err := pathInt(c, ParamBook, validate.IntAtLeast(1))
	if err != nil {
		return err
	}
	rows, err := services.SalesRecordsByBook(session(c, h.DB), book)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// ForBookMonth handles GET /sales_records/years/:year/months/:month/books/:book
// @Summary Sales record of a book for one month
// @Tags SalesRecords
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param book path int true "Book ID"
// @Success 200 {object} models.SalesRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /sales_records/years/{year}/months/{month}/books/{book} [get]
func (h *SalesHandler) ForBookMonth(c *fiber.Ctx) error {
	year, err := pathInt(c, ParamYear, validate.IntRange{})
	if err != nil {
		return err
	}
	month, err := pathInt(c, ParamMonth, validate.IntBetween(1, 12))
	if err != nil {
		return err
	}
	book, err := pathInt(c, ParamBook, validate.IntAtLeast(1))
	if err != nil {
		return err
	}
	row, err := services.SalesRecordFor(session(c, h.DB), year, month, book)
	if err != nil {
		return err
	}
	return c.JSON(row)
}
