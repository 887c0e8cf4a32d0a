package gorm

import (
	"path"
	"testing"

	"github.com/mailslurper/settings-service/configs"
)

func TestNewMigratesSqlite(t *testing.T) {
	cfg := &configs.Config{
		DatabaseType: dbTypeSqlite,
		DatabaseDSN:  path.Join(t.TempDir(), "test.db"),
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer Close(db)

	if !db.Migrator().HasTable("kv_items") {
		t.Error("expected kv_items table to exist after migration")
	}
}

func TestNewUnsupportedType(t *testing.T) {
	cfg := &configs.Config{DatabaseType: "oracle", DatabaseDSN: "x"}

	if _, err := New(cfg); err == nil {
		t.Fatal("expected an error for an unsupported database type")
	}
}
