package gormrepo

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscaper escapes LIKE wildcards with '!', which needs no quoting on
// MySQL, Postgres or SQLite (a backslash does on MySQL).
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(q string) string { return "%" + likeEscaper.Replace(q) + "%" }

func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func newestFirst(table, column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + "." + column + " DESC").Order(table + ".id DESC")
	}
}

func limitIfPositive(n int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if n > 0 {
			return db.Limit(n)
		}
		return db
	}
}
