package export

import (
	"context"

	"github.com/coursecms/coursesite/internal/content"
	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/models"
)

// Collect reads every slot, falling back to the seed of any slot that is
// absent or unreadable, and assembles the snapshot.
func Collect(ctx context.Context, store *draftstore.Store) (models.SiteData, error) {
	settings, err := draftstore.Get(ctx, store, models.SlotSiteSettings, content.SeedSiteSettings())
	if err != nil {
		return models.SiteData{}, err
	}
	landing, err := draftstore.Get(ctx, store, models.SlotLandingPage, content.SeedLandingPage())
	if err != nil {
		return models.SiteData{}, err
	}
	modules, err := draftstore.Get(ctx, store, models.SlotCourseModules, content.SeedModules())
	if err != nil {
		return models.SiteData{}, err
	}
	info, err := draftstore.Get(ctx, store, models.SlotCourseInfo, content.SeedCourseInfo())
	if err != nil {
		return models.SiteData{}, err
	}
	faqs, err := draftstore.Get(ctx, store, models.SlotCourseFAQs, content.SeedFAQs())
	if err != nil {
		return models.SiteData{}, err
	}

	return models.SiteData{
		SiteSettings:       &settings,
		LandingPageContent: landing,
		Modules:            modules,
		CourseInfo:         info,
		FAQs:               faqs,
	}, nil
}

// Artifact collects the current snapshot and renders it.
func Artifact(ctx context.Context, store *draftstore.Store) ([]byte, error) {
	data, err := Collect(ctx, store)
	if err != nil {
		return nil, err
	}
	return Render(data)
}
