package service

import (
	"context"
	"fmt"

	"github.com/coursecms/coursesite/internal/content"
	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/editor"
	"github.com/coursecms/coursesite/internal/models"
)

// DraftService exposes the draft slots and builds content editors for admin sessions
type DraftService struct {
	store *draftstore.Store
	ids   *content.IDGenerator
}

// NewDraftService creates a new DraftService
func NewDraftService(store *draftstore.Store) *DraftService {
	return &DraftService{store: store, ids: content.NewIDGenerator()}
}

// Store returns the underlying draft store
func (s *DraftService) Store() *draftstore.Store {
	return s.store
}

// Get returns the value of one slot, or its seed when nothing usable is stored
func (s *DraftService) Get(ctx context.Context, slot models.SlotName) (interface{}, error) {
	return draftstore.Load(ctx, s.store, slot)
}

// GetAll returns every slot keyed by name
func (s *DraftService) GetAll(ctx context.Context) (map[models.SlotName]interface{}, error) {
	return draftstore.LoadAll(ctx, s.store)
}

// Replace overwrites a whole slot. Only an admin session may do this.
func (s *DraftService) Replace(ctx context.Context, admin editor.AdminState, slot models.SlotName, doc []byte) error {
	if admin == nil || !admin.IsAdmin() {
		return editor.ErrNotAdmin
	}
	if !slot.IsValid() {
		return fmt.Errorf("%w: %s", draftstore.ErrUnknownSlot, slot)
	}
	return draftstore.Replace(ctx, s.store, slot, doc)
}

// Subscribe attaches to the change feed of slot. An empty slot follows every slot.
func (s *DraftService) Subscribe(slot models.SlotName) (*draftstore.Subscription, error) {
	if slot != "" && !slot.IsValid() {
		return nil, fmt.Errorf("%w: %s", draftstore.ErrUnknownSlot, slot)
	}
	return s.store.Subscribe(slot), nil
}

// Editor returns a content editor acting for admin. The shared id source
// keeps new record ids unique across sessions.
func (s *DraftService) Editor(admin editor.AdminState) *editor.ContentEditor {
	return editor.NewContentEditor(s.store, s.ids, admin)
}
