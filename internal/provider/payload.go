package provider

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
)

// Payload is a decoded JSON object from a provider.
type Payload map[string]any

// Has reports whether key is present with a non-null value.
func (p Payload) Has(key string) bool {
	if p == nil {
		return false
	}
	v, ok := p[key]
	return ok && v != nil
}

// NonEmpty reports whether key holds a non-empty object, list or string.
func (p Payload) NonEmpty(key string) bool {
	if !p.Has(key) {
		return false
	}
	switch v := p[key].(type) {
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	case string:
		return strings.TrimSpace(v) != ""
	default:
		return true
	}
}

func (p Payload) Map(key string) Payload {
	if p == nil {
		return nil
	}
	if m, ok := p[key].(map[string]any); ok {
		return Payload(m)
	}
	return nil
}

// Slice returns the objects of a list, skipping non-object items.
func (p Payload) Slice(key string) []Payload {
	if p == nil {
		return nil
	}
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Payload, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Payload(m))
		}
	}
	return out
}

func (p Payload) String(key string) string {
	if p == nil {
		return ""
	}
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Int64 returns 0 when key is absent or not numeric.
func (p Payload) Int64(key string) int64 {
	n, _ := p.lookupInt(key)
	return n
}

// Stat maps key to a statistic value; absence, null or a non-numeric value
// is unavailable.
func (p Payload) Stat(key string) gamestats.Value {
	if n, ok := p.lookupInt(key); ok {
		return gamestats.Int(n)
	}
	return gamestats.Unavailable()
}

// ID reads an id either directly or from a nested {"id": ...} object.
func (p Payload) ID(key string) int64 {
	if nested := p.Map(key); nested != nil {
		return nested.Int64("id")
	}
	return p.Int64(key)
}

// Time parses key with layout in UTC; empty or malformed values are nil.
func (p Payload) Time(key, layout string) *time.Time {
	raw := p.String(key)
	if raw == "" {
		return nil
	}
	t, err := time.ParseInLocation(layout, raw, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// StringPtr returns nil for absent or blank strings.
func (p Payload) StringPtr(key string) *string {
	v := p.String(key)
	if v == "" {
		return nil
	}
	return &v
}

func (p Payload) lookupInt(key string) (int64, bool) {
	if p == nil {
		return 0, false
	}
	switch v := p[key].(type) {
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
