package config

import (
	"database/sql"

	"qna-board/helper"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sqliteDriverName = "sqlite3_unicode"

// SQLite's built-in lower() only folds ASCII. Every connection opened through
// this driver replaces it with helper.FoldCase so LOWER(col) matches terms
// folded in Go.
func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", foldValue, true)
		},
	})
}

func foldValue(v interface{}) interface{} {
	switch s := v.(type) {
	case string:
		return helper.FoldCase(s)
	case []byte:
		return helper.FoldCase(string(s))
	default:
		return v
	}
}

// SQLite returns a gorm dialector for dsn backed by the Unicode-aware driver.
func SQLite(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn})
}
