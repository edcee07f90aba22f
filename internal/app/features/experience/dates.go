// internal/app/features/experience/dates.go
package experience

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dalemusser/folio/internal/app/system/apierr"
)

// Dates are accepted as RFC 3339 timestamps or plain calendar days.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apierr.Validation("%s must be a date (YYYY-MM-DD or RFC 3339).", field)
}

// nullableDate records whether a field was sent, and whether it was null.
type nullableDate struct {
	Set   bool
	Null  bool
	Value string
}

func (d *nullableDate) UnmarshalJSON(b []byte) error {
	d.Set = true
	if string(b) == "null" {
		d.Null = true
		return nil
	}
	return json.Unmarshal(b, &d.Value)
}
