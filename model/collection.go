package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	CollectionTypeBase = "base"
	CollectionTypeAuth = "auth"
)

// Collection describes a schema-bearing record collection. The field schema
// is stored as a JSON array of field names.
type Collection struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"uniqueIndex;size:64;not null"`
	Type      string `gorm:"size:16;not null;default:base"`
	Schema    string `gorm:"type:json;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == 0 {
		c.ID = GenerateID()
	}
	return nil
}

// FieldNames decodes the stored schema. A malformed schema yields an error
// rather than an empty set so callers do not mistake it for "no fields".
func (c *Collection) FieldNames() ([]string, error) {
	var fields []string
	if err := json.Unmarshal([]byte(c.Schema), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
