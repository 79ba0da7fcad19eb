package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"

// FlexibleDate accepts either a calendar date ("2024-03-01") or an RFC 3339 timestamp.
type FlexibleDate struct {
	time.Time
}

func (d *FlexibleDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date %q must be YYYY-MM-DD or RFC3339", s)
	}
	d.Time = t
	return nil
}

func (d FlexibleDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// FlexibleFlag holds a liquidity flag sent either as a JSON boolean or as a
// string sentinel. Booleans are normalized to "YES"/"NO".
type FlexibleFlag string

func (f *FlexibleFlag) UnmarshalJSON(b []byte) error {
	var asBool bool
	if err := json.Unmarshal(b, &asBool); err == nil {
		if asBool {
			*f = "YES"
		} else {
			*f = "NO"
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("liquid_assets must be a boolean or a string")
	}
	*f = FlexibleFlag(s)
	return nil
}

// FlexibleText takes a JSON string verbatim, and any other JSON value as its
// compact source text. It lets update_description_properties arrive either
// as an embedded object or as a string.
type FlexibleText string

func (t *FlexibleText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = FlexibleText(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*t = FlexibleText(buf.String())
	return nil
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
