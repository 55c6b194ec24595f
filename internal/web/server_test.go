package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/deskbird-auto/internal/booking"
)

func validBody(t *testing.T) []byte {
	t.Helper()
	return []byte(`{
		"workspace_id": "ws1",
		"favorite_seats": {"desk1": {"resource_id": "R1", "zone_item_id": 7}},
		"target_days": ["Mon"]
	}`)
}

func TestHealth(t *testing.T) {
	s := &Server{CredentialsReady: true}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRun_MissingCredentials(t *testing.T) {
	called := false
	s := &Server{
		CredentialsReady: false,
		Run: func(ctx context.Context, req booking.RunRequest) (*booking.RunReport, error) {
			called = true
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/run", bytes.NewReader(validBody(t)))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, called, "no run may happen without credentials")

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body["error"], "credentials")
}

func TestRun_InvalidBody(t *testing.T) {
	s := &Server{CredentialsReady: true}

	req := httptest.NewRequest(http.MethodPost, "/run", bytes.NewReader([]byte(`{not json`)))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRun_ValidationError(t *testing.T) {
	s := &Server{CredentialsReady: true}

	req := httptest.NewRequest(http.MethodPost, "/run",
		bytes.NewReader([]byte(`{"workspace_id":"","favorite_seats":{},"target_days":[]}`)))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRun_Success(t *testing.T) {
	var got booking.RunRequest
	s := &Server{
		CredentialsReady: true,
		Run: func(ctx context.Context, req booking.RunRequest) (*booking.RunReport, error) {
			got = req
			return &booking.RunReport{
				RunID: "run-1",
				BookingsMade: []booking.BookedSeat{
					{Seat: "desk1", Date: "02/06/2025", Status: "success"},
				},
				BookingsFailed:   []booking.FailedDate{},
				BookingsSkipped:  []booking.SkippedDate{},
				Checkins:         []booking.CheckinOutcome{},
				UpcomingBookings: []booking.BookingRecord{},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/run", bytes.NewReader(validBody(t)))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ws1", got.WorkspaceID)
	require.Len(t, got.FavoriteSeats, 1)
	assert.Equal(t, "desk1", got.FavoriteSeats[0].Name)

	var rep booking.RunReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rep))
	require.Len(t, rep.BookingsMade, 1)
	assert.Equal(t, "desk1", rep.BookingsMade[0].Seat)
	assert.NotNil(t, rep.BookingsFailed)
	assert.NotNil(t, rep.Checkins)
}

func TestRun_EmptyListsStillSweep(t *testing.T) {
	// no seats and no target days is a valid request: nothing is booked,
	// but the check-in sweep still runs
	called := false
	s := &Server{
		CredentialsReady: true,
		Run: func(ctx context.Context, req booking.RunRequest) (*booking.RunReport, error) {
			called = true
			assert.Empty(t, req.FavoriteSeats)
			assert.Empty(t, req.TargetDays)
			return &booking.RunReport{
				RunID:           "run-2",
				BookingsMade:    []booking.BookedSeat{},
				BookingsFailed:  []booking.FailedDate{},
				BookingsSkipped: []booking.SkippedDate{},
				Checkins: []booking.CheckinOutcome{
					{BookingID: 1, Status: "success"},
				},
				UpcomingBookings: []booking.BookingRecord{},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/run",
		bytes.NewReader([]byte(`{"workspace_id":"ws1","favorite_seats":{},"target_days":[]}`)))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)

	var rep booking.RunReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rep))
	assert.Empty(t, rep.BookingsMade)
	require.Len(t, rep.Checkins, 1)
}

func TestRun_UpstreamFailure(t *testing.T) {
	s := &Server{
		CredentialsReady: true,
		Run: func(ctx context.Context, req booking.RunRequest) (*booking.RunReport, error) {
			return nil, errors.New("authenticate: invalid password")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/run", bytes.NewReader(validBody(t)))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRun_MethodNotAllowed(t *testing.T) {
	s := &Server{CredentialsReady: true}

	req := httptest.NewRequest(http.MethodGet, "/run", nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
