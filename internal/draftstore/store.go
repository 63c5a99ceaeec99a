// Package draftstore implements the persisted draft slots: a key-value cache
// of JSON documents with an in-memory mirror, a pluggable persistence backend
// and change notification for every subscriber of a slot.
package draftstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/models"
)

// subscriberBuffer is the number of pending changes a subscriber may lag behind
// before further changes are dropped for it.
const subscriberBuffer = 16

// Change describes a committed write to a slot.
type Change struct {
	Slot     models.SlotName `json:"slot"`
	Document json.RawMessage `json:"document"`
	At       time.Time       `json:"at"`
}

// Subscription receives the changes of one slot, or of every slot.
type Subscription struct {
	C <-chan Change

	id    int
	slot  models.SlotName
	ch    chan Change
	store *Store
	once  sync.Once
}

// Close detaches the subscription and closes its channel.
func (sub *Subscription) Close() {
	sub.once.Do(func() {
		sub.store.unsubscribe(sub)
	})
}

// Store is the draft store. All mutations are serialised and the last writer wins.
type Store struct {
	backend Backend

	mu     sync.Mutex
	mirror map[models.SlotName][]byte

	subMu  sync.Mutex
	subs   map[int]*Subscription
	nextID int
}

// New creates a store over backend.
func New(backend Backend) *Store {
	if backend == nil {
		panic("draft backend cannot be nil")
	}
	return &Store{
		backend: backend,
		mirror:  make(map[models.SlotName][]byte),
		subs:    make(map[int]*Subscription),
	}
}

// Subscribe attaches a subscriber to slot. An empty slot subscribes to every slot.
func (s *Store) Subscribe(slot models.SlotName) *Subscription {
	ch := make(chan Change, subscriberBuffer)

	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	sub := &Subscription{
		C:     ch,
		id:    s.nextID,
		slot:  slot,
		ch:    ch,
		store: s,
	}
	s.subs[sub.id] = sub
	return sub
}

func (s *Store) unsubscribe(sub *Subscription) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if _, ok := s.subs[sub.id]; ok {
		delete(s.subs, sub.id)
		close(sub.ch)
	}
}

// notify broadcasts a change without blocking the writer. It runs under s.mu
// so subscribers observe changes in commit order.
func (s *Store) notify(change Change) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, sub := range s.subs {
		if sub.slot != "" && sub.slot != change.Slot {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			log.Debug().
				Str("slot", string(change.Slot)).
				Int("subscriber", sub.id).
				Msg("Dropping draft change for slow subscriber")
		}
	}
}

// SetRaw replaces the document of slot with an already encoded JSON value.
// Callers are responsible for the document matching the slot's shape.
func (s *Store) SetRaw(ctx context.Context, slot models.SlotName, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeLocked(ctx, slot, doc); err != nil {
		return err
	}
	s.notify(Change{Slot: slot, Document: doc, At: time.Now()})
	return nil
}

// writeLocked persists doc and refreshes the mirror. The caller holds s.mu.
func (s *Store) writeLocked(ctx context.Context, slot models.SlotName, doc []byte) error {
	if err := s.backend.Write(ctx, slot, doc); err != nil {
		return fmt.Errorf("persist draft %s: %w", slot, err)
	}
	s.mirror[slot] = doc
	return nil
}

// resolveLocked returns the current document of slot. A missing document, or
// one that valid rejects, is replaced by seed which is written back as is.
// The caller holds s.mu.
func (s *Store) resolveLocked(ctx context.Context, slot models.SlotName, seed []byte, valid func([]byte) bool) ([]byte, error) {
	if doc, ok := s.mirror[slot]; ok && valid(doc) {
		return doc, nil
	}

	doc, found, err := s.backend.Read(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("load draft %s: %w", slot, err)
	}
	if found && valid(doc) {
		s.mirror[slot] = doc
		return doc, nil
	}

	if found {
		log.Warn().Str("slot", string(slot)).Msg("Discarding unreadable draft, restoring seed")
	}
	if err := s.writeLocked(ctx, slot, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// encode marshals v without HTML escaping so embed markup is stored as typed.
func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodes reports whether doc is a non-null JSON value that decodes into T.
func decodes[T any](doc []byte) bool {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}
	var v T
	return json.Unmarshal(trimmed, &v) == nil
}

// Get returns the value of slot, falling back to seed when the persisted
// document is absent or unreadable. The fallback is written back.
func Get[T any](ctx context.Context, s *Store, slot models.SlotName, seed T) (T, error) {
	var zero T

	seedDoc, err := encode(seed)
	if err != nil {
		return zero, fmt.Errorf("encode seed %s: %w", slot, err)
	}

	s.mu.Lock()
	doc, err := s.resolveLocked(ctx, slot, seedDoc, decodes[T])
	s.mu.Unlock()
	if err != nil {
		return zero, err
	}

	var v T
	if err := json.Unmarshal(doc, &v); err != nil {
		return zero, fmt.Errorf("decode draft %s: %w", slot, err)
	}
	return v, nil
}

// Set replaces the value of slot and notifies its subscribers.
func Set[T any](ctx context.Context, s *Store, slot models.SlotName, value T) error {
	doc, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", slot, err)
	}
	return s.SetRaw(ctx, slot, doc)
}

// Update applies fn to the current value of slot and stores the result. The
// read and the write happen under one lock, so concurrent updates never lose
// each other's changes. When fn fails nothing is written. When fn returns
// ErrUnchanged the current value is returned without a write or a broadcast.
func Update[T any](ctx context.Context, s *Store, slot models.SlotName, seed T, fn func(T) (T, error)) (T, error) {
	var zero T

	seedDoc, err := encode(seed)
	if err != nil {
		return zero, fmt.Errorf("encode seed %s: %w", slot, err)
	}

	s.mu.Lock()
	doc, err := s.resolveLocked(ctx, slot, seedDoc, decodes[T])
	if err != nil {
		s.mu.Unlock()
		return zero, err
	}

	var current T
	if err := json.Unmarshal(doc, &current); err != nil {
		s.mu.Unlock()
		return zero, fmt.Errorf("decode draft %s: %w", slot, err)
	}

	next, err := fn(current)
	if errors.Is(err, ErrUnchanged) {
		s.mu.Unlock()
		return current, nil
	}
	if err != nil {
		s.mu.Unlock()
		return zero, err
	}

	nextDoc, err := encode(next)
	if err != nil {
		s.mu.Unlock()
		return zero, fmt.Errorf("encode draft %s: %w", slot, err)
	}
	if err := s.writeLocked(ctx, slot, nextDoc); err != nil {
		s.mu.Unlock()
		return zero, err
	}
	s.notify(Change{Slot: slot, Document: nextDoc, At: time.Now()})
	s.mu.Unlock()

	return next, nil
}
