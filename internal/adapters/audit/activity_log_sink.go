package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
)

const insertActivity = `INSERT INTO activity_logs (user_id, action, target_type, target_id, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// ActivityLogSink writes audit records to activity_logs over database/sql.
type ActivityLogSink struct {
	db      *sql.DB
	timeout time.Duration
}

// NewActivityLogSink creates a sink. A zero timeout defaults to two seconds.
func NewActivityLogSink(db *sql.DB, timeout time.Duration) *ActivityLogSink {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &ActivityLogSink{db: db, timeout: timeout}
}

var _ portssvc.AuditSink = (*ActivityLogSink)(nil)

func (s *ActivityLogSink) Record(ctx context.Context, rec domain.AuditRecord) error {
	details := rec.Details
	if rec.RequestID != "" {
		details = make(map[string]any, len(rec.Details)+1)
		for k, v := range rec.Details {
			details[k] = v
		}
		details["requestId"] = rec.RequestID
	}
	var raw any // NULL when there are no details
	if len(details) > 0 {
		encoded, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to encode audit details for %s: %w", rec.Action, err)
		}
		raw = encoded
	}
	occurred := rec.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, insertActivity, rec.UserID, rec.Action, rec.TargetType, rec.TargetID, raw, occurred); err != nil {
		return fmt.Errorf("failed to write activity log %s %s: %w", rec.Action, rec.TargetID, err)
	}
	return nil
}
