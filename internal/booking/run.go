package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LookaheadDays is the booking horizon: occurrences of a target weekday are
// resolved within this many days from now.
const LookaheadDays = 10

// Weekday names accepted in target_days, mapped to the platform's weekday
// index (Monday = 0). Anything else contributes no dates and no error.
var weekdayIndex = map[string]int{
	"Mon": 0, "Tue": 1, "Wed": 2, "Thu": 3, "Fri": 4, "Sat": 5, "Sun": 6,
}

// Client is the platform capability surface the orchestration runs against.
// Tests substitute a scripted implementation.
type Client interface {
	Authenticate(ctx context.Context) (token string, err error)
	BookSeat(ctx context.Context, token string, seat Seat, date, workspaceID string) (BookResult, error)
	UserBookings(ctx context.Context, token string) ([]BookingRecord, error)
	CheckIn(ctx context.Context, token string, bookingID int64, zoneItemID int) error
	UpcomingOccurrences(weekdayIdx, maxDays int) []string
}

// Runner executes one booking pass: book target dates seat-by-seat, then
// check in today's bookings. A Runner holds no per-run state; Run may be
// called concurrently.
type Runner struct {
	Client Client

	// AttemptDelay is inserted after each unsuccessful seat attempt to
	// respect the platform's pacing expectations.
	AttemptDelay time.Duration

	// Now overrides the wall clock in tests. The same-day comparison for
	// check-ins uses the host's local zone, matching the platform's notion
	// of "today" for the office this process is deployed for.
	Now func() time.Time

	// pauseFn replaces the pacing timer in tests.
	pauseFn func(context.Context) error
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run performs a full booking pass. It returns an error only when nothing
// useful could happen at all (authentication or the bookings fetch failed);
// per-date and per-check-in failures are recorded in the report instead.
func (r *Runner) Run(ctx context.Context, req RunRequest) (*RunReport, error) {
	token, err := r.Client.Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	rep := &RunReport{
		RunID:            uuid.NewString(),
		BookingsMade:     []BookedSeat{},
		BookingsFailed:   []FailedDate{},
		BookingsSkipped:  []SkippedDate{},
		Checkins:         []CheckinOutcome{},
		UpcomingBookings: []BookingRecord{},
	}

	excludes := normalizeExcludes(req.ExcludeDates)

	for _, day := range req.TargetDays {
		idx, ok := weekdayIndex[day]
		if !ok {
			continue
		}
		for _, date := range r.Client.UpcomingOccurrences(idx, LookaheadDays) {
			if excludes[date] {
				rep.BookingsSkipped = append(rep.BookingsSkipped, SkippedDate{
					Date:   DisplayDate(date),
					Status: "excluded",
				})
				continue
			}
			if err := r.bookDate(ctx, token, req, date, rep); err != nil {
				return nil, err
			}
		}
	}

	records, err := r.Client.UserBookings(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	rep.UpcomingBookings = records

	today := r.now().Format("2006-01-02")
	for _, b := range records {
		startDate := time.UnixMilli(b.BookingStartTime).Format("2006-01-02")
		if startDate != today || b.CheckInStatus == StatusCheckedIn {
			continue
		}
		if err := r.Client.CheckIn(ctx, token, b.ID, b.ZoneItemID); err != nil {
			rep.Checkins = append(rep.Checkins, CheckinOutcome{
				BookingID: b.ID,
				Status:    "failed",
				Error:     err.Error(),
			})
			continue
		}
		rep.Checkins = append(rep.Checkins, CheckinOutcome{
			BookingID: b.ID,
			Status:    "success",
		})
	}

	return rep, nil
}

// bookDate tries the favorite seats in order and stops at the first success.
// A booking-call error counts as "this seat failed, try the next one"; when
// every seat errored, the last error is carried on the failed outcome.
func (r *Runner) bookDate(ctx context.Context, token string, req RunRequest, date string, rep *RunReport) error {
	var lastErr error
	for _, pref := range req.FavoriteSeats {
		res, err := r.Client.BookSeat(ctx, token, pref.Seat, date, req.WorkspaceID)
		if err == nil && len(res.SuccessfulBookings) > 0 {
			rep.BookingsMade = append(rep.BookingsMade, BookedSeat{
				Seat:   pref.Name,
				Date:   DisplayDate(date),
				Status: "success",
			})
			return nil
		}
		if err != nil {
			lastErr = err
		}
		if err := r.pause(ctx); err != nil {
			return err
		}
	}
	failed := FailedDate{Date: DisplayDate(date), Status: "all_seats_unavailable"}
	if lastErr != nil {
		failed.Error = lastErr.Error()
	}
	rep.BookingsFailed = append(rep.BookingsFailed, failed)
	return nil
}

func (r *Runner) pause(ctx context.Context) error {
	if r.pauseFn != nil {
		return r.pauseFn(ctx)
	}
	if r.AttemptDelay <= 0 {
		return nil
	}
	t := time.NewTimer(r.AttemptDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
