package model

import (
	"time"

	"gorm.io/gorm"
)

// Record is a single document belonging to a Collection. Field values live
// in the JSON data column; lookups go through JSON_EXTRACT.
type Record struct {
	ID           uint   `gorm:"primarykey"`
	CollectionID uint   `gorm:"index;not null"`
	Data         string `gorm:"type:json;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == 0 {
		r.ID = GenerateID()
	}
	return nil
}
