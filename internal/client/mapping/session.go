package mapping

import (
	"errors"
	"fmt"

	"github.com/confsync/confsync/internal/client/models"
)

var ErrMissingID = errors.New("payload has no usable id")

// Session maps one decoded JSON object onto a SessionPatch. Keys are looked
// up under both their current and legacy names. An object without a usable
// id cannot be reconciled and yields ErrMissingID.
func Session(raw map[string]any, dates *DateParser) (models.SessionPatch, error) {
	r := &fieldReader{raw: raw}

	var patch models.SessionPatch
	if id := r.str("id", "event_key"); id != nil && *id != "" {
		patch.ID = *id
	} else if id := r.integer("id"); id != nil {
		// some legacy payloads carry numeric ids
		patch.ID = fmt.Sprintf("%d", *id)
	} else {
		return models.SessionPatch{}, ErrMissingID
	}

	patch.Name = r.str("name", "event_name")
	patch.Category = r.str("category", "event_type")
	patch.Room = r.str("room", "venue")
	patch.Description = r.str("description")
	patch.BannerURL = r.str("banner", "banner_url")
	patch.Capacity = r.integer("capacity")
	patch.Tags = r.strSlice("tags")
	patch.SpeakerIDs = r.strSlice("hosts", "speakers")

	if s := r.str("start", "event_start"); s != nil {
		if t, err := dates.Parse(*s); err != nil {
			r.skip("start", err.Error())
		} else {
			patch.Start = &t
		}
	}
	if s := r.str("end", "event_end"); s != nil {
		if t, err := dates.Parse(*s); err != nil {
			r.skip("end", err.Error())
		} else {
			patch.End = &t
		}
	}

	patch.Skipped = r.skipped
	return patch, nil
}

// SessionBatch decodes a whole session payload. The current API returns an
// array of objects; the legacy API and the live feed return a map keyed by
// session id. Objects without an id are dropped, everything else is mapped.
func SessionBatch(v any, dates *DateParser) ([]models.SessionPatch, error) {
	switch value := v.(type) {
	case []any:
		patches := make([]models.SessionPatch, 0, len(value))
		for _, item := range value {
			raw, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("session list element is %T, not an object", item)
			}
			patch, err := Session(raw, dates)
			if err != nil {
				continue
			}
			patches = append(patches, patch)
		}
		return patches, nil
	case map[string]any:
		patches := make([]models.SessionPatch, 0, len(value))
		for key, item := range value {
			raw, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("session entry %q is %T, not an object", key, item)
			}
			patch, err := Session(withID(raw, key), dates)
			if err != nil {
				continue
			}
			patches = append(patches, patch)
		}
		return patches, nil
	default:
		return nil, fmt.Errorf("session payload is %T, expected array or object", v)
	}
}

// withID returns raw with the map key injected as "id" when the object does
// not carry an id of its own. Keyed payloads put the id in the key.
func withID(raw map[string]any, key string) map[string]any {
	if _, ok := raw["id"]; ok {
		return raw
	}
	if _, ok := raw["event_key"]; ok {
		return raw
	}
	out := make(map[string]any, len(raw)+1)
	for k, v := range raw {
		out[k] = v
	}
	out["id"] = key
	return out
}
