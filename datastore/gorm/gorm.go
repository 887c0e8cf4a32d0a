// Package gorm opens the SQL database backing the gorm key-value store and
// brings its schema up to date.
package gorm

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/mailslurper/settings-service/configs"
	"github.com/mailslurper/settings-service/migrations"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func New(cfg *configs.Config) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, options())
	if err != nil {
		return &gorm.DB{}, err
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations.List())
	if err := m.Migrate(); err != nil {
		return &gorm.DB{}, err
	}

	log.WithFields(log.Fields{"type": cfg.DatabaseType}).Debug("Database migrated")

	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		panic("unable to close database")
	}
	err = sqlDB.Close()
	if err != nil {
		panic("unable to close database")
	}
}
