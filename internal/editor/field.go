package editor

import "sync"

// Mode is the presentation variant of an editable field.
type Mode int

const (
	// Display renders the committed value read-only.
	Display Mode = iota

	// Editing binds an input to a scratch copy of the value.
	Editing
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "display"
}

// Field is one inline-editable value. Keystrokes only touch the scratch copy;
// the owner's callback runs once per commit.
type Field[T any] struct {
	mu       sync.Mutex
	mode     Mode
	value    T
	scratch  T
	canEdit  func() bool
	onCommit func(T) error
}

// NewField creates a displayed field. canEdit decides whether the viewer may
// enter edit mode; onCommit receives the scratch value on commit.
func NewField[T any](value T, canEdit func() bool, onCommit func(T) error) *Field[T] {
	return &Field[T]{
		mode:     Display,
		value:    value,
		canEdit:  canEdit,
		onCommit: onCommit,
	}
}

// Mode returns the current variant.
func (f *Field[T]) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// Value returns the last committed value.
func (f *Field[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Scratch returns the uncommitted input while editing.
func (f *Field[T]) Scratch() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scratch
}

// Sync replaces the committed value when the owner's document changed. The
// scratch copy of an ongoing edit is left alone.
func (f *Field[T]) Sync(value T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = value
}

// Begin enters edit mode, seeding the scratch copy from the committed value.
func (f *Field[T]) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.canEdit == nil || !f.canEdit() {
		return ErrNotAdmin
	}
	if f.mode == Editing {
		return nil
	}
	f.scratch = f.value
	f.mode = Editing
	return nil
}

// Input replaces the scratch copy.
func (f *Field[T]) Input(v T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.mode != Editing {
		return ErrNotEditing
	}
	f.scratch = v
	return nil
}

// Commit hands the scratch copy to the owner and returns to display. Save
// buttons, blur and the accept key all end here. If the owner rejects the
// value the field stays in edit mode with the scratch copy intact.
func (f *Field[T]) Commit() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.mode != Editing {
		return ErrNotEditing
	}
	if f.onCommit != nil {
		if err := f.onCommit(f.scratch); err != nil {
			return err
		}
	}
	f.value = f.scratch
	f.mode = Display
	return nil
}

// Cancel discards the scratch copy without calling the owner.
func (f *Field[T]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	var zero T
	f.scratch = zero
	f.mode = Display
}
