package mapping

import (
	"fmt"

	"github.com/confsync/confsync/internal/client/models"
)

// Guest maps one decoded JSON object onto a GuestPatch for the given
// category. Legacy guest ids are numeric and only unique within a category,
// so the category is part of the key.
func Guest(category string, raw map[string]any) (models.GuestPatch, error) {
	r := &fieldReader{raw: raw}

	var patch models.GuestPatch
	patch.Category = category

	if id := r.str("id"); id != nil && *id != "" {
		patch.ID = *id
	} else if id := r.integer("id"); id != nil {
		patch.ID = fmt.Sprintf("%d", *id)
	} else {
		return models.GuestPatch{}, ErrMissingID
	}

	patch.FirstName = r.str("first_name", "firstname")
	patch.LastName = r.str("last_name", "lastname")
	patch.Bio = r.str("bio")
	patch.PhotoURL = r.str("photo", "photo_path")
	patch.HiResPhotoURL = r.str("hi_res_photo", "hires_photo_path")
	patch.GuestOfHonor = r.yesNo("goh")

	patch.Skipped = r.skipped
	return patch, nil
}

// GuestBatch decodes the guest-list payload: an object keyed by category
// name, each value an array of guest objects. Guests without an id are
// dropped.
func GuestBatch(v any) ([]models.GuestPatch, error) {
	byCategory, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("guest payload is %T, expected object keyed by category", v)
	}

	var patches []models.GuestPatch
	for category, list := range byCategory {
		items, ok := list.([]any)
		if !ok {
			return nil, fmt.Errorf("guest category %q is %T, not an array", category, list)
		}
		for _, item := range items {
			raw, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("guest in category %q is %T, not an object", category, item)
			}
			patch, err := Guest(category, raw)
			if err != nil {
				continue
			}
			patches = append(patches, patch)
		}
	}
	return patches, nil
}
