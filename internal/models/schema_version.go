package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// CurrentSchemaVersion is the schema generation this build understands.
// Bump when a migration adds or changes columns.
const CurrentSchemaVersion = 3

// SchemaVersion is the stored schema generation marker. Code branches on
// the stored version instead of catching driver-specific column errors.
type SchemaVersion struct {
	ID        uint      `gorm:"primarykey"`
	Version   int       `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (SchemaVersion) TableName() string {
	return "schema_versions"
}

// EnsureSchemaVersion records the current version after a successful
// migration, keeping a single row.
func EnsureSchemaVersion() error {
	var marker SchemaVersion
	err := DB.Order("id desc").First(&marker).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil && marker.Version == CurrentSchemaVersion {
		return nil
	}
	return DB.Create(&SchemaVersion{
		Version:   CurrentSchemaVersion,
		AppliedAt: time.Now(),
	}).Error
}

// StoredSchemaVersion reads the recorded schema generation (0 when absent).
func StoredSchemaVersion() (int, error) {
	var marker SchemaVersion
	err := DB.Order("id desc").First(&marker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return marker.Version, nil
}
