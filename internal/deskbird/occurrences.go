package deskbird

// UpcomingOccurrences resolves a weekday index (Monday = 0 .. Sunday = 6) to
// the dates of that weekday within the next maxDays days, starting tomorrow,
// in ascending canonical YYYY-MM-DD form. Out-of-range indexes yield nothing.
func (c *Client) UpcomingOccurrences(weekdayIdx, maxDays int) []string {
	if weekdayIdx < 0 || weekdayIdx > 6 {
		return nil
	}
	now := c.now()
	var out []string
	for offset := 1; offset <= maxDays; offset++ {
		d := now.AddDate(0, 0, offset)
		// time.Weekday has Sunday = 0; shift to Monday = 0.
		if (int(d.Weekday())+6)%7 == weekdayIdx {
			out = append(out, d.Format("2006-01-02"))
		}
	}
	return out
}
