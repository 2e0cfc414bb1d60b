package model

import "time"

type AuditEvent struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	EventType  string    `gorm:"size:64;not null;index"` // ip_auth_success, ip_auth_denied...
	Collection string    `gorm:"size:64;index"`          // collection name at event time
	RecordID   uint      `gorm:"index"`                  // matched record, zero if none
	Identity   string    `gorm:"size:256"`               // identity value presented by the caller
	IP         string    `gorm:"size:45;not null"`       // resolved client address
	Reason     string    `gorm:"size:512"`               // failure reason or context
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (AuditEvent) TableName() string {
	return "audit"
}
