package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItem is a single stored key/value pair.
type GormItem struct {
	Key       string    `gorm:"column:item_key;primaryKey;size:191"`
	Value     string    `gorm:"column:item_value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (GormItem) TableName() string {
	return "kv_items"
}

// GormStore keeps values in the kv_items table of a SQL database.
// The table is created by the migrations package.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db}
}

func (s *GormStore) Get(key string) (string, bool, error) {
	item := GormItem{}
	err := s.db.First(&item, "item_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return item.Value, true, nil
}

func (s *GormStore) Set(key, value string) error {
	// update value if exists or create a new item
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"item_value", "updated_at"}),
	}).Create(&GormItem{Key: key, Value: value, UpdatedAt: time.Now()}).Error
}

func (s *GormStore) Delete(key string) error {
	res := s.db.Delete(&GormItem{}, "item_key = ?", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrKeyNotFound
	}
	return nil
}
