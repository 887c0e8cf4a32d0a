package m20261017

import (
	"time"

	"gorm.io/gorm"
)

const ID = "20261017"

type KVItem struct {
	Key       string    `gorm:"column:item_key;primaryKey;size:191"`
	Value     string    `gorm:"column:item_value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (KVItem) TableName() string {
	return "kv_items"
}

func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(&KVItem{})
}

func Rollback(tx *gorm.DB) error {
	return tx.Migrator().DropTable("kv_items")
}
