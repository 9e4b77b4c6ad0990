package app

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/adapter"
	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	until := time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC)
	three, zero := 3, 0

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "wrong pin",
			err:  adapterError(t, http.StatusUnauthorized, models.OperationResult{Error: "invalid PIN", RemainingAttempts: &three}),
			want: "wrong PIN, 3 attempt(s) left",
		},
		{
			name: "wrong pin locks",
			err:  adapterError(t, http.StatusUnauthorized, models.OperationResult{RemainingAttempts: &zero, LockedUntil: &until}),
			want: "wrong PIN, account is locked until " + until.Local().Format("15:04"),
		},
		{
			name: "expired session",
			err:  adapterError(t, http.StatusUnauthorized, models.OperationResult{Error: "session expired or invalid"}),
			want: MsgSessionExpired,
		},
		{
			name: "locked",
			err:  adapterError(t, http.StatusLocked, models.OperationResult{LockedUntil: &until}),
			want: "account is locked until " + until.Local().Format("15:04"),
		},
		{
			name: "suspended",
			err:  adapterError(t, http.StatusForbidden, models.OperationResult{Error: "account is suspended"}),
			want: "account is suspended",
		},
		{
			name: "forbidden without message",
			err:  adapterError(t, http.StatusForbidden, models.OperationResult{}),
			want: MsgAccessDenied,
		},
		{
			name: "weak pin",
			err:  adapterError(t, http.StatusUnprocessableEntity, models.OperationResult{Error: "PIN is too weak: PIN is too common"}),
			want: "PIN is too weak: PIN is too common",
		},
		{
			name: "rate limited",
			err:  adapterError(t, http.StatusTooManyRequests, models.OperationResult{Error: "too many requests"}),
			want: MsgTooManyRequests,
		},
		{
			name: "server down",
			err:  errors.New(`Post "http://kiosk/api/auth/login": dial tcp 127.0.0.1:8080: connect: connection refused`),
			want: MsgServerUnavailable,
		},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.err))
		})
	}
}

func adapterError(t *testing.T, status int, result models.OperationResult) error {
	t.Helper()
	return adapter.NewRequestError(status, result)
}
