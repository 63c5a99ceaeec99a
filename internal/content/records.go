package content

import (
	"fmt"

	"github.com/coursecms/coursesite/internal/models"
)

// Placeholder text given to freshly added records.
const (
	NewFeatureTitle       = "נושא חדש"
	NewFeatureDescription = "תיאור קצר של הנושא."
	NewTestimonialText    = "הוסף כאן את תוכן ההמלצה. לחץ לעריכה."
	NewTestimonialAuthor  = "שם הממליץ"
	NewModuleDescription  = "הוסף כאן תיאור קצר למודול."
	NewResourceTitle      = "קישור חדש"
	NewResourceURL        = "#"
	NewFAQQuestion        = "שאלה חדשה"
	NewFAQAnswer          = "זוהי תשובה לדוגמה. ניתן לערוך אותה."
)

// NewFeature builds a placeholder feature.
func NewFeature(id int64) models.Feature {
	return models.Feature{
		ID:          id,
		Icon:        models.DefaultFeatureIcon,
		Title:       NewFeatureTitle,
		Description: NewFeatureDescription,
	}
}

// NewTestimonial builds a placeholder testimonial.
func NewTestimonial(id int64) models.Testimonial {
	return models.Testimonial{ID: id, Text: NewTestimonialText, Author: NewTestimonialAuthor}
}

// NewModule builds a placeholder module. position is the 1-based number shown in its title.
func NewModule(id int64, position int) models.Module {
	return models.Module{
		ID:          id,
		Title:       fmt.Sprintf("מודול %d: כותרת חדשה", position),
		VideoCode:   nil,
		Description: NewModuleDescription,
		Resources:   []models.Resource{},
	}
}

// NewResource builds a placeholder resource link.
func NewResource(id int64) models.Resource {
	return models.Resource{ID: id, Title: NewResourceTitle, URL: NewResourceURL}
}

// NewFAQ builds a placeholder question.
func NewFAQ(id int64) models.FAQ {
	return models.FAQ{ID: id, Question: NewFAQQuestion, Answer: NewFAQAnswer}
}
