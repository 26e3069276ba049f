package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the database connection.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey, which the shortening retry loop depends on.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
}
