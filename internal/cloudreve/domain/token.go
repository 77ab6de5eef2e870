// Package domain contains the wire and business types for the Cloudreve-style
// remote storage service.
package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// EpochSeconds is a point in time normalized to Unix seconds. The service has
// shipped expiry fields as ISO-8601 strings, decimal strings, second integers,
// and millisecond integers depending on revision; all forms decode into this
// one representation.
type EpochSeconds int64

// millisecondThreshold separates second from millisecond timestamps. Anything
// above it is treated as milliseconds and divided by 1000.
const millisecondThreshold = 1_000_000_000_000

// UnmarshalJSON decodes any of the known wire forms into epoch seconds.
// Unparseable values decode to zero rather than failing the whole payload.
func (e *EpochSeconds) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*e = 0
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*e = 0
			return nil
		}
		*e = parseEpochString(str)
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		*e = 0
		return nil
	}
	*e = normalizeEpoch(int64(num))
	return nil
}

// Time converts to a time.Time. Zero means unknown.
func (e EpochSeconds) Time() time.Time {
	return time.Unix(int64(e), 0)
}

// Known reports whether the value carries a usable timestamp.
func (e EpochSeconds) Known() bool {
	return e > 0
}

func parseEpochString(s string) EpochSeconds {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// ISO-8601 first, with and without offset.
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return EpochSeconds(t.Unix())
		}
	}
	// Decimal string, possibly fractional.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return normalizeEpoch(int64(f))
	}
	return 0
}

func normalizeEpoch(v int64) EpochSeconds {
	if v > millisecondThreshold {
		v /= 1000
	}
	return EpochSeconds(v)
}

// Token is the credential object cached between requests. It is replaced
// wholesale by login or refresh and is never cached without an access token.
type Token struct {
	AccessToken    string       `json:"access_token"`
	RefreshToken   string       `json:"refresh_token,omitempty"`
	AccessExpires  EpochSeconds `json:"access_expires,omitempty"`
	RefreshExpires EpochSeconds `json:"refresh_expires,omitempty"`
}

// NeedsRefresh reports whether the access token is due for renewal at the
// given instant, applying the skew safety margin. A token with unknown expiry
// is treated as always valid.
func (t *Token) NeedsRefresh(now time.Time, skew time.Duration) bool {
	if !t.AccessExpires.Known() {
		return false
	}
	if skew < 0 {
		skew = 0
	}
	return !now.Before(t.AccessExpires.Time().Add(-skew))
}

// RefreshUsable reports whether the refresh token exists and has not itself
// expired at the given instant.
func (t *Token) RefreshUsable(now time.Time) bool {
	if t.RefreshToken == "" {
		return false
	}
	if !t.RefreshExpires.Known() {
		return true
	}
	return now.Before(t.RefreshExpires.Time())
}
