package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/localnerve/publishing-house/internal/types"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNumericOutOfRange   = "22003"
)

// MySQL and MariaDB error numbers.
const (
	myDuplicateEntry   = 1062
	myRowIsReferenced  = 1451
	myNoReferencedRow  = 1452
	myRowIsReferenced2 = 1217
	myNoReferencedRow2 = 1216
	myOutOfRange       = 1264
)

var (
	pgKeyDetail   = regexp.MustCompile(`Key \(([^)]+)\)=`)
	sqliteUnique  = regexp.MustCompile(`UNIQUE constraint failed: ([\w.]+)`)
	mysqlKeyName  = regexp.MustCompile(`for key '(?:[\w]+\.)?([\w]+)'`)
	mssqlKeyName  = regexp.MustCompile(`(?:constraint|index) '([\w]+)'`)
	mysqlColumn   = regexp.MustCompile(`for column '([\w]+)'`)
	uniqueIdxName = regexp.MustCompile(`^(?:idx|uni)_[a-z]+?_(.+)$`)
)

// ConvertStoreError classifies driver errors into CustomErrors. Unique and
// foreign-key violations become 400 constraint errors and numeric overflow a
// 400 validation error; anything it cannot classify is returned unchanged.
func ConvertStoreError(err error) error {
	if err == nil {
		return nil
	}
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return types.Constraint("duplicate value violates a unique constraint")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return types.Constraint("row is referenced by or references a missing row")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return uniqueError(columnFrom(pgKeyDetail, pgErr.Detail, pgErr.ConstraintName))
		case pgForeignKeyViolation:
			return referenceError(pgErr.TableName)
		case pgNumericOutOfRange:
			return rangeError(pgErr.ColumnName)
		}
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myDuplicateEntry:
			return uniqueError(columnFrom(mysqlKeyName, myErr.Message, ""))
		case myRowIsReferenced, myNoReferencedRow, myRowIsReferenced2, myNoReferencedRow2:
			return referenceError("")
		case myOutOfRange:
			return rangeError(columnFrom(mysqlColumn, myErr.Message, ""))
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		col := columnFrom(sqliteUnique, msg, "")
		if i := strings.LastIndex(col, "."); i >= 0 {
			col = col[i+1:]
		}
		return uniqueError(col)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return referenceError("")
	case strings.Contains(msg, "Violation of UNIQUE KEY"), strings.Contains(msg, "Cannot insert duplicate key"):
		return uniqueError(columnFrom(mssqlKeyName, msg, ""))
	case strings.Contains(msg, "REFERENCE constraint"), strings.Contains(msg, "FOREIGN KEY constraint"):
		return referenceError("")
	case strings.Contains(msg, "duplicate key"):
		return uniqueError("")
	case strings.Contains(msg, "Arithmetic overflow"):
		return rangeError("")
	}
	return err
}

func uniqueError(column string) error {
	if column == "" {
		return types.Constraint("duplicate value violates a unique constraint")
	}
	return types.Constraint("duplicate value for %s violates a unique constraint", column)
}

func rangeError(column string) error {
	if column == "" {
		return types.Validation("value out of range for its column")
	}
	return types.Validation("value out of range for %s", column)
}

func referenceError(table string) error {
	if table == "" {
		return types.Constraint("row is referenced by or references a missing row")
	}
	return types.Constraint("row is referenced by or references a missing row in %s", table)
}

// columnFrom extracts a column name from msg, falling back to an index name
// with its gorm-generated prefix removed.
func columnFrom(re *regexp.Regexp, msg, fallback string) string {
	name := fallback
	if m := re.FindStringSubmatch(msg); m != nil {
		name = m[1]
	}
	if m := uniqueIdxName.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}
