package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Exclusion dates arrive in whatever format the caller types. Day-first wins
// over month-first for slash/dash/dot formats ("03/04/2025" is 3 April); only
// strings none of these layouts accept fall through to the permissive parser.
var dayFirstLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
}

// NormalizeDate converts a user-supplied date string to canonical YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return t.Format("2006-01-02"), nil
}

// DisplayDate converts canonical YYYY-MM-DD to the DD/MM/YYYY form used in
// run reports. Inputs that are not canonical are returned unchanged.
func DisplayDate(canonical string) string {
	t, err := time.Parse("2006-01-02", canonical)
	if err != nil {
		return canonical
	}
	return t.Format("02/01/2006")
}

// normalizeExcludes builds the canonical exclusion set. Unparseable entries
// are dropped: this is a best-effort filter, not validation.
func normalizeExcludes(in []string) map[string]bool {
	out := make(map[string]bool, len(in))
	for _, s := range in {
		d, err := NormalizeDate(s)
		if err != nil {
			continue
		}
		out[d] = true
	}
	return out
}
