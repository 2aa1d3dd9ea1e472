package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestCustomGormLogger_LogModeReturnsCopy(t *testing.T) {
	base := &CustomGormLogger{Config: logger.Config{LogLevel: logger.Warn}}
	changed := base.LogMode(logger.Error)

	if base.Config.LogLevel != logger.Warn {
		t.Fatalf("LogMode mutated the receiver")
	}
	if changed.(*CustomGormLogger).Config.LogLevel != logger.Error {
		t.Fatalf("LogMode did not apply the new level")
	}
}
