package models

import "time"

// KVRecord backs the persistence port on SQL databases: one row per record name.
type KVRecord struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}
