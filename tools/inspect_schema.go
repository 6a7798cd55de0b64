package main

import (
	"fmt"
	"log"

	"github.com/localnerve/publishing-house/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type sqliteObject struct {
	Type string
	Name string
	SQL  string
}

func main() {
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatal(err)
	}

	// Tables first, then their indexes
	var objects []sqliteObject
	err = db.Raw("SELECT type, name, sql FROM sqlite_master WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%' ORDER BY type DESC, tbl_name, name").
		Scan(&objects).Error
	if err != nil {
		log.Fatal(err)
	}

	for _, o := range objects {
		fmt.Printf("\n=== %s: %s ===\n", o.Type, o.Name)
		fmt.Println(o.SQL)
	}
}
