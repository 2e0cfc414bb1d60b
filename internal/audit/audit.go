package audit

import (
	"context"

	"github.com/takoapp/tako/model"
)

const (
	EventTypeIPAuthSuccess = "ip_auth_success"
	EventTypeIPAuthDenied  = "ip_auth_denied"
	EventTypeAdminLogin    = "admin_login_success"
	EventTypeAdminDenied   = "admin_login_failure"
)

// Recorder persists security-relevant events. Implementations must not
// fail the request on write errors.
type Recorder interface {
	RecordEvent(ctx context.Context, event *model.AuditEvent) error
}

type IPAuthRecord struct {
	Collection string
	RecordID   uint
	Identity   string
	IP         string
	Success    bool
	Reason     string
}

func RecordIPAuth(ctx context.Context, recorder Recorder, record IPAuthRecord) error {
	eventType := EventTypeIPAuthDenied
	if record.Success {
		eventType = EventTypeIPAuthSuccess
	}
	return recorder.RecordEvent(ctx, &model.AuditEvent{
		EventType:  eventType,
		Collection: record.Collection,
		RecordID:   record.RecordID,
		Identity:   record.Identity,
		IP:         record.IP,
		Reason:     record.Reason,
	})
}

type AdminLoginRecord struct {
	Email   string
	IP      string
	Success bool
	Reason  string
}

func RecordAdminLogin(ctx context.Context, recorder Recorder, record AdminLoginRecord) error {
	eventType := EventTypeAdminDenied
	if record.Success {
		eventType = EventTypeAdminLogin
	}
	return recorder.RecordEvent(ctx, &model.AuditEvent{
		EventType: eventType,
		Identity:  record.Email,
		IP:        record.IP,
		Reason:    record.Reason,
	})
}
