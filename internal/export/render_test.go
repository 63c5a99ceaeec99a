package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecms/coursesite/internal/content"
	"github.com/coursecms/coursesite/internal/models"
)

func TestRender_ExactLayout(t *testing.T) {
	video := "<iframe src='x'></iframe>"
	data := models.SiteData{
		SiteSettings: &models.SiteSettings{ThemeColor: "#4682B4"},
		LandingPageContent: models.LandingPageContent{
			HeroTitle: "שלום",
		},
		Modules: []models.Module{
			{ID: 1, Title: "m", VideoCode: &video},
		},
	}

	out, err := Render(data)
	require.NoError(t, err)

	want := `import type { SiteData } from '../types';

export const initialData: SiteData = {
  "siteSettings": {
    "themeColor": "#4682B4",
    "headerTitle": "",
    "footerText": "",
    "contactEmail": ""
  },
  "landingPageContent": {
    "heroTitle": "שלום",
    "heroSubtitle": "",
    "heroButtonText": "",
    "featuresTitle": "",
    "features": [],
    "testimonialsTitle": "",
    "testimonials": []
  },
  "modules": [
    {
      "id": 1,
      "title": "m",
      "videoCode": "<iframe src='x'></iframe>",
      "description": "",
      "resources": []
    }
  ],
  "courseInfo": {
    "about": "",
    "thanks": "",
    "contact": ""
  },
  "faqs": []
};
`
	assert.Equal(t, want, string(out))
}

func TestRender_IsIdempotent(t *testing.T) {
	data := content.SeedSiteData()

	first, err := Render(data)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Render(data)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRender_BodyIsValidJSON(t *testing.T) {
	out, err := Render(content.SeedSiteData())
	require.NoError(t, err)

	text := string(out)
	require.True(t, strings.HasPrefix(text, Preamble))
	require.True(t, strings.HasSuffix(text, Terminator))

	body := strings.TrimSuffix(strings.TrimPrefix(text, Preamble), Terminator)
	var decoded models.SiteData
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	assert.Equal(t, content.SeedSiteData(), decoded)
}

func TestRender_NullVideoCode(t *testing.T) {
	out, err := Render(content.SeedSiteData())
	require.NoError(t, err)
	assert.Contains(t, string(out), `"videoCode": null`)
}
