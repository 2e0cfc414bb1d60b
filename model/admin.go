package model

import (
	"time"

	"gorm.io/gorm"
)

// Admin is a privileged principal. Admin tokens gate the log ingestion
// endpoint.
type Admin struct {
	ID        uint   `gorm:"primarykey"`
	Email     string `gorm:"uniqueIndex;size:256;not null"`
	Password  string `gorm:"size:64;not null"` // bcrypt hash
	Disabled  bool   `gorm:"default:false;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == 0 {
		a.ID = GenerateID()
	}
	return nil
}
