package hooks

import (
	"fmt"
	"time"

	recast "github.com/reoring/recast"
	"github.com/reoring/recast/schema"
)

// Time is the declared alias for timestamp fields. Matching sees through the
// alias, so any constructed value is accepted; pair it with RFC3339 to get
// time.Time values out of wire strings.
func Time() schema.Type { return schema.Named("Time", schema.Any()) }

// RFC3339 returns the hook binding for Time fields: RFC3339(-Nano) strings
// parse into time.Time, time.Time values pass through.
func RFC3339() recast.TypeHook {
	return recast.TypeHook{Type: Time(), Fn: func(v any) (any, error) {
		switch c := v.(type) {
		case time.Time:
			return c, nil
		case string:
			return parseRFC3339(c)
		}
		return nil, fmt.Errorf("hooks: expected an RFC3339 string, got %T", v)
	}}
}

// FormatRFC3339 projects a time.Time back into its canonical wire form:
// UTC, RFC3339Nano with trailing zeros trimmed.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, fmt.Errorf("hooks: invalid RFC3339 time: %w", err)
	}
	return t, nil
}
