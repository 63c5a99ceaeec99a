package export

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecms/coursesite/internal/content"
	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/models"
)

func TestCollect_FallsBackPerSlot(t *testing.T) {
	ctx := context.Background()
	backend := draftstore.NewMemoryBackend()
	require.NoError(t, backend.Write(ctx, models.SlotCourseModules, []byte(`"corrupt"`)))
	require.NoError(t, backend.Write(ctx, models.SlotCourseInfo, []byte(`{"about":"edited","thanks":"","contact":""}`)))
	store := draftstore.New(backend)

	data, err := Collect(ctx, store)
	require.NoError(t, err)

	assert.Equal(t, content.SeedModules(), data.Modules)
	assert.Equal(t, "edited", data.CourseInfo.About)
	assert.Equal(t, content.SeedFAQs(), data.FAQs)
	require.NotNil(t, data.SiteSettings)
	assert.Equal(t, content.DefaultThemeColor, data.SiteSettings.ThemeColor)
}

func TestArtifact_MatchesRenderOfCollect(t *testing.T) {
	ctx := context.Background()
	store := draftstore.New(draftstore.NewMemoryBackend())

	artifact, err := Artifact(ctx, store)
	require.NoError(t, err)

	rendered, err := Render(content.SeedSiteData())
	require.NoError(t, err)
	assert.Equal(t, string(rendered), string(artifact))
}
