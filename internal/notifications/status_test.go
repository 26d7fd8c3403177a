package notifications_test

import (
	"errors"
	"testing"
	"time"

	"plenario/internal/notifications"
)

func TestAttemptTransition(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		current  notifications.AttemptStatus
		target   notifications.AttemptStatus
		deadline *time.Time
		wantErr  error
	}{
		{
			name:    "pending to delivered",
			current: notifications.StatusPending,
			target:  notifications.StatusDelivered,
		},
		{
			name:    "pending to failed",
			current: notifications.StatusPending,
			target:  notifications.StatusFailed,
		},
		{
			name:    "delivered to confirmed",
			current: notifications.StatusDelivered,
			target:  notifications.StatusConfirmed,
		},
		{
			name:    "pending cannot be confirmed",
			current: notifications.StatusPending,
			target:  notifications.StatusConfirmed,
			wantErr: notifications.ErrInvalidTransition,
		},
		{
			name:    "delivered cannot fail",
			current: notifications.StatusDelivered,
			target:  notifications.StatusFailed,
			wantErr: notifications.ErrInvalidTransition,
		},
		{
			name:     "pending expires past deadline",
			current:  notifications.StatusPending,
			target:   notifications.StatusExpired,
			deadline: &past,
		},
		{
			name:     "delivered expires past deadline",
			current:  notifications.StatusDelivered,
			target:   notifications.StatusExpired,
			deadline: &past,
		},
		{
			name:     "no expiry before deadline",
			current:  notifications.StatusPending,
			target:   notifications.StatusExpired,
			deadline: &future,
			wantErr:  notifications.ErrDeadlineNotReached,
		},
		{
			name:    "no expiry without deadline",
			current: notifications.StatusPending,
			target:  notifications.StatusExpired,
			wantErr: notifications.ErrDeadlineNotReached,
		},
		{
			name:    "confirmed is terminal",
			current: notifications.StatusConfirmed,
			target:  notifications.StatusDelivered,
			wantErr: notifications.ErrInvalidTransition,
		},
		{
			name:     "expired is terminal",
			current:  notifications.StatusExpired,
			target:   notifications.StatusDelivered,
			deadline: &past,
			wantErr:  notifications.ErrInvalidTransition,
		},
		{
			name:    "failed is terminal",
			current: notifications.StatusFailed,
			target:  notifications.StatusDelivered,
			wantErr: notifications.ErrInvalidTransition,
		},
		{
			name:    "unknown status rejected",
			current: notifications.StatusPending,
			target:  "RETRYING",
			wantErr: notifications.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := notifications.Transition(tt.current, tt.target, tt.deadline, now)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Transition() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Transition() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
