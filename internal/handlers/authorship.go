package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishing-house/internal/models"
	"github.com/localnerve/publishing-house/internal/services"
	"gorm.io/gorm"
)

// Pair serves GET /Outer/{a1}/{a2} with both rows, a1 first. The ids must
// differ and both rows must exist.
type Pair struct {
	DB       *gorm.DB
	Relation services.Relation
}

func (h *Pair) Handle(c *fiber.Ctx) error {
	ids, err := pathIDs(c, []string{ParamA1, ParamA2})
	if err != nil {
		return err
	}
	db := session(c, h.DB)
	if err := services.CheckOuters(db, h.Relation, ids...); err != nil {
		return err
	}

	rows := make([]models.Entity, 0, len(ids))
	for _, id := range ids {
		row, err := services.Find(db, h.Relation.Outer, id)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return c.JSON(rows)
}

// Coauthored returns the nested base for endpoints under /authors/{a1}/{a2}.
func Coauthored(db *gorm.DB, rel services.Relation) Nested {
	return Nested{DB: db, Relation: rel, Outer: []string{ParamA1, ParamA2}}
}

// Under returns the nested base for endpoints under /Outer/{oid}.
func Under(db *gorm.DB, rel services.Relation) Nested {
	return Nested{DB: db, Relation: rel, Outer: []string{ParamOuter}}
}
