package draftstore

import (
	"context"

	"github.com/coursecms/coursesite/internal/models"
)

// Setter writes one slot. Set takes a literal replacement, Update a function
// from the old value to the new one.
type Setter[T any] struct {
	store *Store
	slot  models.SlotName
	seed  T
}

// NewSetter binds a setter to slot. The seed is what Update starts from when
// the slot has no usable draft.
func NewSetter[T any](s *Store, slot models.SlotName, seed T) Setter[T] {
	return Setter[T]{store: s, slot: slot, seed: seed}
}

// Set replaces the slot value.
func (w Setter[T]) Set(ctx context.Context, value T) error {
	return Set(ctx, w.store, w.slot, value)
}

// Update replaces the slot value with fn applied to the current one. An error
// from fn leaves the slot untouched.
func (w Setter[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	return Update(ctx, w.store, w.slot, w.seed, fn)
}

// Slot reads slot with seed fallback and returns the value together with its setter.
func Slot[T any](ctx context.Context, s *Store, slot models.SlotName, seed T) (T, Setter[T], error) {
	setter := NewSetter(s, slot, seed)
	value, err := Get(ctx, s, slot, seed)
	return value, setter, err
}
