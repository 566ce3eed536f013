package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/ticktock/internal/core/notify"
	"github.com/colonyops/ticktock/internal/data/db"
)

// NotifyStore keeps notification history in the notifications table.
// Timestamps are stored as unix nanoseconds.
type NotifyStore struct {
	db  *db.DB
	now func() time.Time
}

var _ notify.Store = (*NotifyStore)(nil)

func NewNotifyStore(database *db.DB) *NotifyStore {
	return &NotifyStore{db: database, now: time.Now}
}

// Save inserts n, stamping CreatedAt when it is zero, and returns the row id.
func (s *NotifyStore) Save(ctx context.Context, n notify.Notification) (int64, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	params := db.InsertNotificationParams{
		Level:     string(n.Level),
		TimerID:   n.TimerID,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.UnixNano(),
	}

	var id int64
	err := retryBusy(ctx, func() (err error) {
		id, err = s.db.Queries().InsertNotification(ctx, params)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	return id, nil
}

func (s *NotifyStore) List(ctx context.Context) ([]notify.Notification, error) {
	rows, err := s.db.Queries().ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]notify.Notification, len(rows))
	for i, row := range rows {
		out[i] = notify.Notification{
			ID:        row.ID,
			Level:     notify.Level(row.Level),
			TimerID:   row.TimerID,
			Message:   row.Message,
			CreatedAt: time.Unix(0, row.CreatedAt),
		}
	}
	return out, nil
}

// Clear empties the history and reports how many entries it held. The count
// and the delete run in one transaction.
func (s *NotifyStore) Clear(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		var err error
		if count, err = q.CountNotifications(ctx); err != nil {
			return err
		}
		return q.DeleteAllNotifications(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("clear notifications: %w", err)
	}
	return count, nil
}

func (s *NotifyStore) Count(ctx context.Context) (int64, error) {
	count, err := s.db.Queries().CountNotifications(ctx)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}

// Prune deletes entries created before cutoff and returns how many went.
func (s *NotifyStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.db.Queries().DeleteNotificationsBefore(ctx, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune notifications: %w", err)
	}
	return n, nil
}
