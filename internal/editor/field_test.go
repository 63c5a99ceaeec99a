package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allow() bool { return true }
func deny() bool  { return false }

func TestField_CommitCallsOwnerOnce(t *testing.T) {
	var committed []string
	f := NewField("hello", allow, func(v string) error {
		committed = append(committed, v)
		return nil
	})

	require.NoError(t, f.Begin())
	assert.Equal(t, Editing, f.Mode())
	assert.Equal(t, "hello", f.Scratch(), "scratch is seeded from the value")

	require.NoError(t, f.Input("h"))
	require.NoError(t, f.Input("hi"))
	require.NoError(t, f.Input("hi there"))
	assert.Empty(t, committed, "keystrokes never reach the owner")

	require.NoError(t, f.Commit())
	assert.Equal(t, []string{"hi there"}, committed)
	assert.Equal(t, "hi there", f.Value())
	assert.Equal(t, Display, f.Mode())
}

func TestField_CancelRevertsWithoutCallback(t *testing.T) {
	called := false
	f := NewField(42, allow, func(int) error {
		called = true
		return nil
	})

	require.NoError(t, f.Begin())
	require.NoError(t, f.Input(7))
	f.Cancel()

	assert.False(t, called)
	assert.Equal(t, 42, f.Value())
	assert.Equal(t, Display, f.Mode())
}

func TestField_NonAdminNeverEdits(t *testing.T) {
	f := NewField("x", deny, nil)

	assert.ErrorIs(t, f.Begin(), ErrNotAdmin)
	assert.Equal(t, Display, f.Mode())
	assert.ErrorIs(t, f.Input("y"), ErrNotEditing)
	assert.ErrorIs(t, f.Commit(), ErrNotEditing)
}

func TestField_RejectedCommitStaysEditing(t *testing.T) {
	rejection := errors.New("rejected")
	f := NewField("old", allow, func(string) error { return rejection })

	require.NoError(t, f.Begin())
	require.NoError(t, f.Input("new"))

	assert.ErrorIs(t, f.Commit(), rejection)
	assert.Equal(t, Editing, f.Mode())
	assert.Equal(t, "new", f.Scratch())
	assert.Equal(t, "old", f.Value())
}

func TestField_SyncKeepsScratch(t *testing.T) {
	f := NewField("a", allow, nil)
	require.NoError(t, f.Begin())
	require.NoError(t, f.Input("typing"))

	f.Sync("b")

	assert.Equal(t, "b", f.Value())
	assert.Equal(t, "typing", f.Scratch())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "display", Display.String())
	assert.Equal(t, "editing", Editing.String())
}
