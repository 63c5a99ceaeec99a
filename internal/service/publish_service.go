package service

import (
	"context"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/export"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/utils"
)

// Publisher commits a snapshot to the content repository
type Publisher interface {
	Publish(ctx context.Context, data models.SiteData) error
	Configured() bool
}

// PublishService runs publishes one at a time and serves local exports
type PublishService struct {
	store     *draftstore.Store
	publisher Publisher
	exporter  *export.Exporter
}

// NewPublishService creates a new PublishService
func NewPublishService(store *draftstore.Store, publisher Publisher) *PublishService {
	return &PublishService{
		store:     store,
		publisher: publisher,
		exporter:  export.NewExporter(),
	}
}

// Publish commits data. The site data is validated before the attempt starts,
// so a malformed snapshot never reaches the hosting API.
func (s *PublishService) Publish(ctx context.Context, data models.SiteData) (export.Outcome, error) {
	if err := utils.ValidateStruct(&data); err != nil {
		return export.Outcome{}, err
	}

	return s.exporter.Run(ctx, func(ctx context.Context) (string, error) {
		if err := s.publisher.Publish(ctx, data); err != nil {
			return "", err
		}
		return constants.MsgPublishSuccess, nil
	})
}

// PublishDrafts publishes the current content of the draft store
func (s *PublishService) PublishDrafts(ctx context.Context) (export.Outcome, error) {
	data, err := export.Collect(ctx, s.store)
	if err != nil {
		return export.Outcome{}, err
	}
	return s.Publish(ctx, data)
}

// Export renders the current drafts into the baseline artifact. Downloads
// bypass the publish exporter, so they succeed while a publish is running.
func (s *PublishService) Export(ctx context.Context) ([]byte, error) {
	return export.Artifact(ctx, s.store)
}

// Status returns the state of the publish attempt and its last outcome
func (s *PublishService) Status() export.Status {
	return s.exporter.Status()
}

// Configured reports whether publishing can be attempted at all
func (s *PublishService) Configured() bool {
	return s.publisher.Configured()
}
