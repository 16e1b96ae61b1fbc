package sql

import (
	"fmt"

	"dcops-server/internal/infra/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewMemoryORM opens a fresh named in-memory sqlite database. The shared
// cache keeps the database alive across the pool's connections, while the
// unique name keeps separate ORMs (and therefore separate tests) isolated
// from each other.
func NewMemoryORM() (ORM, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", utils.GenerateUUID())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite in-memory db: %w", err)
	}

	return &DB{DB: gormDB, autoMigrationEnabled: true}, nil
}
