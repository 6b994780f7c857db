package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/confsync/confsync/internal/client/models"
)

// fieldReader pulls typed values out of a decoded JSON object, recording a
// diagnostic for every key that is present but unusable.
type fieldReader struct {
	raw     map[string]any
	skipped []models.SkippedField
}

func (r *fieldReader) skip(key, reason string) {
	r.skipped = append(r.skipped, models.SkippedField{Key: key, Reason: reason})
}

// str returns the first present key decoded as a string.
func (r *fieldReader) str(keys ...string) *string {
	for _, key := range keys {
		v, ok := r.raw[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			r.skip(key, fmt.Sprintf("expected string, got %T", v))
			return nil
		}
		return &s
	}
	return nil
}

// integer returns the first present key decoded as an int. The legacy API
// encodes numbers as strings; JSON numbers are accepted too.
func (r *fieldReader) integer(keys ...string) *int {
	for _, key := range keys {
		v, ok := r.raw[key]
		if !ok {
			continue
		}
		switch value := v.(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				r.skip(key, fmt.Sprintf("not an integer: %q", value))
				return nil
			}
			return &n
		case float64:
			n := int(value)
			return &n
		default:
			r.skip(key, fmt.Sprintf("expected number or numeric string, got %T", v))
			return nil
		}
	}
	return nil
}

// yesNo maps the legacy "Y" string flag: true only on exact match,
// anything else (including other types) is false.
func (r *fieldReader) yesNo(keys ...string) *bool {
	for _, key := range keys {
		v, ok := r.raw[key]
		if !ok {
			continue
		}
		b := false
		if s, ok := v.(string); ok {
			b = s == "Y"
		}
		return &b
	}
	return nil
}

// strSlice returns the first present key decoded as an ordered string
// sequence. The current API sends arrays; the legacy API sends
// comma-separated strings.
func (r *fieldReader) strSlice(keys ...string) []string {
	for _, key := range keys {
		v, ok := r.raw[key]
		if !ok {
			continue
		}
		switch value := v.(type) {
		case []any:
			out := make([]string, 0, len(value))
			for _, item := range value {
				s, ok := item.(string)
				if !ok {
					r.skip(key, fmt.Sprintf("expected string element, got %T", item))
					return nil
				}
				out = append(out, s)
			}
			return out
		case string:
			if strings.TrimSpace(value) == "" {
				return []string{}
			}
			parts := strings.Split(value, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return out
		default:
			r.skip(key, fmt.Sprintf("expected array or string, got %T", v))
			return nil
		}
	}
	return nil
}
