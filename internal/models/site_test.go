package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coursecms/coursesite/internal/models"
)

func TestSlotName(t *testing.T) {
	testCases := []struct {
		slot   models.SlotName
		valid  bool
		isList bool
	}{
		{models.SlotSiteSettings, true, false},
		{models.SlotLandingPage, true, false},
		{models.SlotCourseModules, true, true},
		{models.SlotCourseInfo, true, false},
		{models.SlotCourseFAQs, true, true},
		{"sidebar", false, false},
		{"", false, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.slot), func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.slot.IsValid())
			assert.Equal(t, tc.isList, tc.slot.IsList())
		})
	}

	assert.Len(t, models.AllSlots, 5)
}

func TestResolveIcon(t *testing.T) {
	for _, icon := range models.SupportedIcons {
		assert.Equal(t, icon, models.ResolveIcon(string(icon)))
		assert.True(t, icon.IsSupported())
	}

	assert.Equal(t, models.IconHelpCircle, models.ResolveIcon("Rocket"))
	assert.Equal(t, models.IconHelpCircle, models.ResolveIcon(""))
	assert.False(t, models.IconHelpCircle.IsSupported())
	assert.True(t, models.DefaultFeatureIcon.IsSupported())
}
