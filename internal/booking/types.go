package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Seat identifies a bookable desk on the platform.
type Seat struct {
	ResourceID string `json:"resource_id"`
	ZoneItemID int    `json:"zone_item_id"`
}

// SeatPreference is a named seat; the name is only used in run reports.
type SeatPreference struct {
	Name string
	Seat Seat
}

// SeatList holds seat preferences in priority order. Attempt order is part of
// the API contract, so decoding preserves the JSON object's declaration order
// instead of going through a map.
type SeatList []SeatPreference

func (s *SeatList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("favorite_seats: expected a JSON object")
	}
	var out SeatList
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("favorite_seats: expected a seat name")
		}
		var seat Seat
		if err := dec.Decode(&seat); err != nil {
			return fmt.Errorf("favorite_seats[%s]: %w", name, err)
		}
		out = append(out, SeatPreference{Name: name, Seat: seat})
	}
	*s = out
	return nil
}

func (s SeatList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Seat)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RunRequest is the body of POST /run.
type RunRequest struct {
	WorkspaceID   string   `json:"workspace_id"`
	FavoriteSeats SeatList `json:"favorite_seats"`
	TargetDays    []string `json:"target_days"`
	ExcludeDates  []string `json:"exclude_dates"`
}

// Validate checks the request. Empty favorite_seats and target_days are
// valid: such a run books nothing but still performs the check-in sweep.
func (r RunRequest) Validate() error {
	if r.WorkspaceID == "" {
		return fmt.Errorf("workspace_id required")
	}
	return nil
}

// BookingRecord is a booking as reported by the platform. Field names follow
// the platform's JSON; the record is passed through verbatim in run reports.
type BookingRecord struct {
	ID               int64  `json:"id"`
	BookingStartTime int64  `json:"bookingStartTime"`
	BookingEndTime   int64  `json:"bookingEndTime,omitempty"`
	ZoneItemID       int    `json:"zoneItemId"`
	ZoneItemName     string `json:"zoneItemName,omitempty"`
	CheckInStatus    string `json:"checkInStatus"`
	WorkspaceID      string `json:"workspaceId,omitempty"`
}

// CheckInStatus value the platform reports once presence is confirmed.
const StatusCheckedIn = "checkedIn"

// BookResult is the platform's answer to a booking attempt. A non-empty
// SuccessfulBookings list is the success signal.
type BookResult struct {
	SuccessfulBookings []BookingRecord `json:"successfulBookings"`
}

// Outcome records, accumulated per run. Dates are display-formatted
// (DD/MM/YYYY) because that is what callers of the original service see.

type BookedSeat struct {
	Seat   string `json:"seat"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

type FailedDate struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type SkippedDate struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type CheckinOutcome struct {
	BookingID int64  `json:"booking_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// RunReport is the body of a successful POST /run response.
type RunReport struct {
	RunID            string           `json:"run_id"`
	BookingsMade     []BookedSeat     `json:"bookings_made"`
	BookingsFailed   []FailedDate     `json:"bookings_failed"`
	BookingsSkipped  []SkippedDate    `json:"bookings_skipped"`
	Checkins         []CheckinOutcome `json:"checkins"`
	UpcomingBookings []BookingRecord  `json:"upcoming_bookings"`
}
