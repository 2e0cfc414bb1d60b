package audit

import (
	"context"

	"github.com/takoapp/tako/model"
	"gorm.io/gorm"
)

type auditEventRepository struct {
	db *gorm.DB
}

func (r *auditEventRepository) RecordEvent(ctx context.Context, event *model.AuditEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func NewAuditEventRepository(db *gorm.DB) Recorder {
	return &auditEventRepository{
		db: db,
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordEvent(ctx context.Context, event *model.AuditEvent) error {
	return nil
}

// NopRecorder discards events; used in tests.
func NopRecorder() Recorder {
	return nopRecorder{}
}
