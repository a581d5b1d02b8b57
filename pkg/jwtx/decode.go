package jwtx

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultGrace is subtracted from a token's exp before it is compared with
// the current time. It absorbs clock drift between this process and the API.
const DefaultGrace = 5 * time.Second

// segmentParser only decodes segments, it never validates anything.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Claims is the decoded payload segment of a token. Nothing in it has been
// verified; the API is the only party that checks signatures.
type Claims struct {
	jwt.MapClaims
}

// Decode extracts the claims from the middle segment of token. It returns
// false for anything that is not three dot separated segments whose middle
// segment is base64url encoded JSON object.
func Decode(token string) (Claims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[1] == "" {
		return Claims{}, false
	}

	// Standard alphabet characters are folded into the url-safe alphabet so
	// both encodings are accepted.
	seg := strings.NewReplacer("+", "-", "/", "_").Replace(parts[1])
	raw, err := segmentParser.DecodeSegment(seg)
	if err != nil {
		return Claims{}, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return Claims{}, false
	}
	if dec.More() {
		return Claims{}, false
	}

	return Claims{MapClaims: jwt.MapClaims(m)}, true
}

// Subject returns the "sub" claim as a string. Numeric subjects are
// formatted without a fraction.
func (c Claims) Subject() string {
	switch v := c.MapClaims["sub"].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// UserID returns the "sub" claim as an integer. The API issues the subject
// as a decimal string, older tokens carry a bare number.
func (c Claims) UserID() (int64, bool) {
	sub := c.Subject()
	if sub == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Username returns the "username" claim, or "" when absent.
func (c Claims) Username() string {
	s, _ := c.MapClaims["username"].(string)
	return s
}

// Expiry returns the "exp" claim with sub-second precision. Only JSON
// numbers are accepted.
func (c Claims) Expiry() (time.Time, bool) {
	var secs float64
	switch v := c.MapClaims["exp"].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		secs = f
	case float64:
		secs = v
	default:
		return time.Time{}, false
	}

	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return time.Time{}, false
	}

	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))), true
}

// HasExpiry reports whether a usable "exp" claim is present.
func (c Claims) HasExpiry() bool {
	_, ok := c.Expiry()
	return ok
}

// ExpiredAt reports whether the claims are outside their validity window at
// now. Claims without exp are always expired.
func (c Claims) ExpiredAt(now time.Time, grace time.Duration) bool {
	exp, ok := c.Expiry()
	if !ok {
		return true
	}
	if grace < 0 {
		grace = 0
	}
	return !now.Before(exp.Add(-grace))
}

// IsExpired reports whether token should no longer be sent. Undecodable
// tokens count as expired.
func IsExpired(token string, grace time.Duration) bool {
	return IsExpiredAt(token, grace, time.Now())
}

// IsExpiredAt is IsExpired with an explicit clock.
func IsExpiredAt(token string, grace time.Duration, now time.Time) bool {
	claims, ok := Decode(token)
	if !ok {
		return true
	}
	return claims.ExpiredAt(now, grace)
}
