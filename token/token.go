// Package token inspects bearer tokens on the client side. Signatures are
// never verified here; only the shape and the exp claim are checked. The
// backend remains the authority on whether a token is valid.
package token

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/afterschool-portal/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

var parser = jwtlib.NewParser(jwtlib.WithPaddingAllowed())

// Decode returns the payload claims of a header.payload.signature token.
func Decode(raw string) (jwtlib.MapClaims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.ErrTokenMissing
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected 3 segments, got %d: %w", len(parts), errors.ErrTokenMalformed)
	}

	payload, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode payload: %v: %w", err, errors.ErrTokenMalformed)
	}

	claims := jwtlib.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("parse payload: %v: %w", err, errors.ErrTokenMalformed)
	}
	return claims, nil
}

// ExpiresAt returns the exp claim. ok is false when the token carries none;
// null, zero and empty values count as none. A numeric string is read as a
// number.
func ExpiresAt(raw string) (exp time.Time, ok bool, err error) {
	claims, err := Decode(raw)
	if err != nil {
		return time.Time{}, false, err
	}

	switch v := claims["exp"].(type) {
	case nil:
		return time.Time{}, false, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return time.Time{}, false, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			err = strconv.ErrSyntax
		}
		if err != nil {
			return time.Time{}, false, fmt.Errorf("exp claim %q: %v: %w", v, err, errors.ErrTokenMalformed)
		}
		claims["exp"] = f
	case float64:
		if v == 0 {
			return time.Time{}, false, nil
		}
	}

	date, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("exp claim: %v: %w", err, errors.ErrTokenMalformed)
	}
	if date == nil {
		return time.Time{}, false, nil
	}
	return date.Time, true, nil
}

// Validate reports ErrTokenMissing, ErrTokenMalformed or ErrTokenExpired.
// A token whose exp is at or before the current second is expired; a token
// without exp is accepted.
func Validate(raw string) error {
	exp, ok, err := ExpiresAt(raw)
	if err != nil {
		return err
	}
	if ok && exp.Unix() <= NowTimeFunc().Unix() {
		return fmt.Errorf("expired at %s: %w", exp.UTC().Format(time.RFC3339), errors.ErrTokenExpired)
	}
	return nil
}
