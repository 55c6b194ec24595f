// Package deskbird is a minimal client for the Deskbird workspace API based
// on the request flow used by the community auto-booking scripts: password
// auth through the Google identity-toolkit endpoint keyed by the app key,
// bearer-token calls against the v1.1 REST API for everything else.
package deskbird

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/deskbird-auto/internal/booking"
)

const (
	defaultBaseURL = "https://app.deskbird.com/api/v1.1"
	defaultAuthURL = "https://www.googleapis.com/identitytoolkit/v3/relyingparty/verifyPassword"

	defaultStartHour = 9
	defaultEndHour   = 18
)

type Credentials struct {
	Email    string
	Password string
	AppKey   string
}

type Config struct {
	Credentials Credentials

	// BaseURL and AuthURL default to the production endpoints; tests point
	// them at a local server.
	BaseURL string
	AuthURL string

	// Local office hours used to turn a calendar date into the epoch-ms
	// interval the platform books.
	StartHour int
	EndHour   int

	// Now overrides the wall clock in tests.
	Now func() time.Time
}

type Client struct {
	hc    *http.Client
	creds Credentials

	base    string
	authURL string

	startHour int
	endHour   int

	now func() time.Time
}

func New(cfg Config) *Client {
	c := &Client{
		hc:        &http.Client{Timeout: 10 * time.Second},
		creds:     cfg.Credentials,
		base:      strings.TrimRight(cfg.BaseURL, "/"),
		authURL:   cfg.AuthURL,
		startHour: cfg.StartHour,
		endHour:   cfg.EndHour,
		now:       cfg.Now,
	}
	if c.base == "" {
		c.base = defaultBaseURL
	}
	if c.authURL == "" {
		c.authURL = defaultAuthURL
	}
	if c.startHour == 0 && c.endHour == 0 {
		c.startHour, c.endHour = defaultStartHour, defaultEndHour
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Authenticate exchanges the configured credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	payload := map[string]any{
		"email":             c.creds.Email,
		"password":          c.creds.Password,
		"returnSecureToken": true,
	}
	status, body, err := c.do(ctx, http.MethodPost, c.authURL, "", map[string]string{"key": c.creds.AppKey}, payload)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", fmt.Errorf("authenticate failed: %s", apiError(body, status))
	}
	var res struct {
		IDToken string `json:"idToken"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("authenticate: decode response: %w", err)
	}
	if res.IDToken == "" {
		return "", fmt.Errorf("authenticate: empty token in response")
	}
	return res.IDToken, nil
}

// BookSeat books one seat for the office-hours interval of date (YYYY-MM-DD,
// host-local zone). The platform reports partial results; the caller decides
// success by inspecting SuccessfulBookings.
func (c *Client) BookSeat(ctx context.Context, token string, seat booking.Seat, date, workspaceID string) (booking.BookResult, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return booking.BookResult{}, fmt.Errorf("book seat: bad date %q: %w", date, err)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), c.startHour, 0, 0, 0, time.Local)
	end := time.Date(day.Year(), day.Month(), day.Day(), c.endHour, 0, 0, 0, time.Local)

	payload := map[string]any{
		"bookings": []map[string]any{{
			"bookingStartTime": start.UnixMilli(),
			"bookingEndTime":   end.UnixMilli(),
			"isAnonymous":      false,
			"resourceId":       seat.ResourceID,
			"zoneItemId":       seat.ZoneItemID,
			"workspaceId":      workspaceID,
		}},
	}
	status, body, err := c.do(ctx, http.MethodPost, c.base+"/bookings", token, nil, payload)
	if err != nil {
		return booking.BookResult{}, err
	}
	if status >= 400 {
		return booking.BookResult{}, fmt.Errorf("book seat failed: %s", apiError(body, status))
	}
	var res booking.BookResult
	if err := json.Unmarshal(body, &res); err != nil {
		return booking.BookResult{}, fmt.Errorf("book seat: decode response: %w", err)
	}
	return res, nil
}

// UserBookings fetches the user's upcoming bookings.
func (c *Client) UserBookings(ctx context.Context, token string) ([]booking.BookingRecord, error) {
	query := map[string]string{
		"skip":     "0",
		"limit":    "50",
		"upcoming": "true",
	}
	status, body, err := c.do(ctx, http.MethodGet, c.base+"/user/bookings", token, query, nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, fmt.Errorf("fetch bookings failed: %s", apiError(body, status))
	}
	var res struct {
		Results []booking.BookingRecord `json:"results"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("fetch bookings: decode response: %w", err)
	}
	return res.Results, nil
}

// CheckIn confirms presence for a booking scheduled today.
func (c *Client) CheckIn(ctx context.Context, token string, bookingID int64, zoneItemID int) error {
	payload := map[string]any{"zoneItemId": zoneItemID}
	url := c.base + "/bookings/" + strconv.FormatInt(bookingID, 10) + "/checkin"
	status, body, err := c.do(ctx, http.MethodPost, url, token, nil, payload)
	if err != nil {
		return err
	}
	if status >= 400 {
		return fmt.Errorf("check-in failed: %s", apiError(body, status))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, rawURL, token string, query map[string]string, payload any) (int, []byte, error) {
	var rdr io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, rdr)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Add("user-agent", "deskbird-auto/1.0")
	if payload != nil {
		req.Header.Add("content-type", "application/json")
	}
	if token != "" {
		req.Header.Add("authorization", "Bearer "+token)
	}
	if query != nil {
		q := req.URL.Query()
		for k, v := range query {
			q.Add(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}

// apiError extracts the platform's message field when present; both the
// identity-toolkit and the REST API shapes are handled.
func apiError(body []byte, status int) string {
	var r struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &r)
	if r.Message != "" {
		return fmt.Sprintf("%s (status=%d)", r.Message, status)
	}
	if r.Error.Message != "" {
		return fmt.Sprintf("%s (status=%d)", r.Error.Message, status)
	}
	return fmt.Sprintf("status=%d", status)
}
