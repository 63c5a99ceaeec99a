package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecms/coursesite/internal/content"
	"github.com/coursecms/coursesite/internal/models"
)

func newTestStore(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	return New(backend), backend
}

func TestGet_AbsentSlotYieldsSeedAndWritesItBack(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	seed := content.SeedModules()

	got, err := Get(ctx, store, models.SlotCourseModules, seed)
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	stored, found, err := backend.Read(ctx, models.SlotCourseModules)
	require.NoError(t, err)
	require.True(t, found)

	want, err := encode(seed)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(stored))
}

func TestGet_MalformedDocumentsFallBackToSeed(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		slot models.SlotName
		doc  string
		get  func(*Store) (interface{}, interface{}, error)
	}{
		{
			name: "list slot holding an object",
			slot: models.SlotCourseModules,
			doc:  `{"id":1}`,
			get: func(s *Store) (interface{}, interface{}, error) {
				v, err := Get(ctx, s, models.SlotCourseModules, content.SeedModules())
				return v, content.SeedModules(), err
			},
		},
		{
			name: "list slot holding null",
			slot: models.SlotCourseFAQs,
			doc:  `null`,
			get: func(s *Store) (interface{}, interface{}, error) {
				v, err := Get(ctx, s, models.SlotCourseFAQs, content.SeedFAQs())
				return v, content.SeedFAQs(), err
			},
		},
		{
			name: "object slot holding an array",
			slot: models.SlotCourseInfo,
			doc:  `[1,2,3]`,
			get: func(s *Store) (interface{}, interface{}, error) {
				v, err := Get(ctx, s, models.SlotCourseInfo, content.SeedCourseInfo())
				return v, content.SeedCourseInfo(), err
			},
		},
		{
			name: "truncated json",
			slot: models.SlotSiteSettings,
			doc:  `{"themeColor":"#123`,
			get: func(s *Store) (interface{}, interface{}, error) {
				v, err := Get(ctx, s, models.SlotSiteSettings, content.SeedSiteSettings())
				return v, content.SeedSiteSettings(), err
			},
		},
		{
			name: "landing page with a string for features",
			slot: models.SlotLandingPage,
			doc:  `{"heroTitle":"x","features":"oops"}`,
			get: func(s *Store) (interface{}, interface{}, error) {
				v, err := Get(ctx, s, models.SlotLandingPage, content.SeedLandingPage())
				return v, content.SeedLandingPage(), err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, backend := newTestStore(t)
			require.NoError(t, backend.Write(ctx, tt.slot, []byte(tt.doc)))

			got, want, err := tt.get(store)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			stored, _, err := backend.Read(ctx, tt.slot)
			require.NoError(t, err)
			wantDoc, err := encode(want)
			require.NoError(t, err)
			assert.Equal(t, string(wantDoc), string(stored), "seed must be written back")
		})
	}
}

func TestGet_ValidDocumentWins(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	require.NoError(t, backend.Write(ctx, models.SlotCourseFAQs, []byte(`[{"id":9,"question":"q","answer":"a"}]`)))

	got, err := Get(ctx, store, models.SlotCourseFAQs, content.SeedFAQs())
	require.NoError(t, err)
	assert.Equal(t, []models.FAQ{{ID: 9, Question: "q", Answer: "a"}}, got)
}

func TestSet_NotifiesSubscribersOfThatSlot(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	faqs := store.Subscribe(models.SlotCourseFAQs)
	defer faqs.Close()
	all := store.Subscribe("")
	defer all.Close()
	info := store.Subscribe(models.SlotCourseInfo)
	defer info.Close()

	value := []models.FAQ{{ID: 1, Question: "q", Answer: "a"}}
	require.NoError(t, Set(ctx, store, models.SlotCourseFAQs, value))

	for _, sub := range []*Subscription{faqs, all} {
		select {
		case change := <-sub.C:
			assert.Equal(t, models.SlotCourseFAQs, change.Slot)
			var got []models.FAQ
			require.NoError(t, json.Unmarshal(change.Document, &got))
			assert.Equal(t, value, got)
		case <-time.After(time.Second):
			t.Fatal("expected a change notification")
		}
	}

	select {
	case change := <-info.C:
		t.Fatalf("unexpected change for other slot: %+v", change)
	default:
	}
}

func TestSet_SlowSubscriberDoesNotBlockWriters(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	sub := store.Subscribe(models.SlotCourseInfo)
	defer sub.Close()

	for i := 0; i < subscriberBuffer*3; i++ {
		require.NoError(t, Set(ctx, store, models.SlotCourseInfo, models.CourseInfo{About: "v"}))
	}
	assert.Len(t, sub.C, subscriberBuffer)
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	sub := store.Subscribe(models.SlotCourseInfo)

	sub.Close()
	sub.Close()

	_, open := <-sub.C
	assert.False(t, open)
	require.NoError(t, Set(context.Background(), store, models.SlotCourseInfo, models.CourseInfo{}))
}

func TestUpdate_ConcurrentAppendsAreNotLost(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := Update(ctx, store, models.SlotCourseFAQs, []models.FAQ{}, func(old []models.FAQ) ([]models.FAQ, error) {
				return content.Append(old, models.FAQ{ID: id}), nil
			})
			assert.NoError(t, err)
		}(int64(i + 100))
	}
	wg.Wait()

	got, err := Get(ctx, store, models.SlotCourseFAQs, []models.FAQ{})
	require.NoError(t, err)
	assert.Len(t, got, writers)
}

func TestUpdate_FailureLeavesValueUnchanged(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	require.NoError(t, Set(ctx, store, models.SlotCourseInfo, models.CourseInfo{About: "kept"}))
	before, _, _ := backend.Read(ctx, models.SlotCourseInfo)

	boom := errors.New("boom")
	_, err := Update(ctx, store, models.SlotCourseInfo, content.SeedCourseInfo(), func(models.CourseInfo) (models.CourseInfo, error) {
		return models.CourseInfo{About: "lost"}, boom
	})
	assert.ErrorIs(t, err, boom)

	after, _, _ := backend.Read(ctx, models.SlotCourseInfo)
	assert.Equal(t, before, after)
}

type failingBackend struct{ *MemoryBackend }

func (failingBackend) Write(context.Context, models.SlotName, []byte) error {
	return errors.New("disk full")
}

func TestSet_BackendFailureIsReturned(t *testing.T) {
	store := New(failingBackend{NewMemoryBackend()})
	sub := store.Subscribe("")
	defer sub.Close()

	err := Set(context.Background(), store, models.SlotCourseInfo, models.CourseInfo{})
	assert.Error(t, err)
	assert.Len(t, sub.C, 0, "failed writes are not broadcast")
}

func TestEncode_DoesNotEscapeMarkup(t *testing.T) {
	doc, err := encode(map[string]string{"videoCode": "<iframe src='x'></iframe>"})
	require.NoError(t, err)
	assert.Equal(t, `{"videoCode":"<iframe src='x'></iframe>"}`, string(doc))
}

func TestSlot_SetterLiteralAndFunction(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	value, setter, err := Slot(ctx, store, models.SlotCourseInfo, content.SeedCourseInfo())
	require.NoError(t, err)
	assert.Equal(t, content.SeedCourseInfo(), value)

	require.NoError(t, setter.Set(ctx, models.CourseInfo{About: "a"}))
	next, err := setter.Update(ctx, func(old models.CourseInfo) (models.CourseInfo, error) {
		old.Thanks = old.About + "b"
		return old, nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.CourseInfo{About: "a", Thanks: "ab"}, next)

	_, err = setter.Update(ctx, func(models.CourseInfo) (models.CourseInfo, error) {
		return models.CourseInfo{}, errors.New("rejected")
	})
	require.Error(t, err)

	stored, _, err := Slot(ctx, store, models.SlotCourseInfo, content.SeedCourseInfo())
	require.NoError(t, err)
	assert.Equal(t, next, stored)
}

func TestUpdate_UnchangedSkipsWrite(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	require.NoError(t, Set(ctx, store, models.SlotCourseInfo, models.CourseInfo{About: "kept"}))
	before, _, err := backend.Read(ctx, models.SlotCourseInfo)
	require.NoError(t, err)

	sub := store.Subscribe(models.SlotCourseInfo)
	defer sub.Close()

	got, err := Update(ctx, store, models.SlotCourseInfo, content.SeedCourseInfo(),
		func(old models.CourseInfo) (models.CourseInfo, error) {
			old.About = "discarded"
			return old, ErrUnchanged
		})
	require.NoError(t, err)
	assert.Equal(t, models.CourseInfo{About: "kept"}, got)
	assert.Len(t, sub.C, 0)

	after, _, err := backend.Read(ctx, models.SlotCourseInfo)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
