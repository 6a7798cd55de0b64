package data

import (
	_ "embed"
)

//go:embed initdb/postgres/001-hash-indexes.sql
var InitdbPostgresHashIndexes string
