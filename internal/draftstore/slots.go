package draftstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coursecms/coursesite/internal/content"
	"github.com/coursecms/coursesite/internal/models"
)

var (
	// ErrUnknownSlot is returned for a slot name outside the fixed set.
	ErrUnknownSlot = errors.New("unknown draft slot")

	// ErrInvalidDocument is returned when a replacement does not match the slot's shape.
	ErrInvalidDocument = errors.New("document does not match the slot shape")

	// ErrUnchanged tells Update that the mutation is a no-op.
	ErrUnchanged = errors.New("draft unchanged")
)

// Load returns the typed value of a named slot with its seed fallback.
func Load(ctx context.Context, s *Store, slot models.SlotName) (interface{}, error) {
	switch slot {
	case models.SlotSiteSettings:
		return Get(ctx, s, slot, content.SeedSiteSettings())
	case models.SlotLandingPage:
		return Get(ctx, s, slot, content.SeedLandingPage())
	case models.SlotCourseModules:
		return Get(ctx, s, slot, content.SeedModules())
	case models.SlotCourseInfo:
		return Get(ctx, s, slot, content.SeedCourseInfo())
	case models.SlotCourseFAQs:
		return Get(ctx, s, slot, content.SeedFAQs())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}
}

// LoadAll returns every slot keyed by name.
func LoadAll(ctx context.Context, s *Store) (map[models.SlotName]interface{}, error) {
	out := make(map[models.SlotName]interface{}, len(models.AllSlots))
	for _, slot := range models.AllSlots {
		v, err := Load(ctx, s, slot)
		if err != nil {
			return nil, err
		}
		out[slot] = v
	}
	return out, nil
}

// Replace validates doc against the shape of slot and stores its canonical encoding.
func Replace(ctx context.Context, s *Store, slot models.SlotName, doc []byte) error {
	switch slot {
	case models.SlotSiteSettings:
		return replaceAs[models.SiteSettings](ctx, s, slot, doc)
	case models.SlotLandingPage:
		return replaceAs[models.LandingPageContent](ctx, s, slot, doc)
	case models.SlotCourseModules:
		return replaceAs[[]models.Module](ctx, s, slot, doc)
	case models.SlotCourseInfo:
		return replaceAs[models.CourseInfo](ctx, s, slot, doc)
	case models.SlotCourseFAQs:
		return replaceAs[[]models.FAQ](ctx, s, slot, doc)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}
}

func replaceAs[T any](ctx context.Context, s *Store, slot models.SlotName, doc []byte) error {
	if !decodes[T](doc) {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, slot)
	}

	var v T
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDocument, slot, err)
	}
	return Set(ctx, s, slot, v)
}
