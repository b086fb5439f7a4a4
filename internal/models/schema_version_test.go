package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestSchemaVersionMarker(t *testing.T) {
	dsn := fmt.Sprintf("file:schema_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&SchemaVersion{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	previous := DB
	DB = db
	defer func() { DB = previous }()

	version, err := StoredSchemaVersion()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if version != 0 {
		t.Fatalf("expected 0 before any marker, got %d", version)
	}

	if err := EnsureSchemaVersion(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	version, err = StoredSchemaVersion()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Fatalf("expected version %d, got %d", CurrentSchemaVersion, version)
	}
}
