package model

import (
	"time"
)

// Registration records when a row was first inserted. The database fills it
// in (and returns it) on insert; updates never touch it.
type Registration struct {
	RegisteredAt time.Time `gorm:"column:fecha_registro;not null;default:CURRENT_TIMESTAMP" json:"fecha_registro"`
}

// Tables lists every model managed by AutoMigrate, parents first.
func Tables() []interface{} {
	return []interface{}{&Supplier{}, &InventoryItem{}}
}
