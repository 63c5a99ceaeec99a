// Package models provides the data structures shared by the course site backend.
// The content records mirror the wire names used by the browser client so a
// snapshot can round-trip between the draft store, the export artifact and the
// publish endpoint without translation.
package models

// SlotName identifies one persisted draft document.
type SlotName string

// Fixed draft slot keys. Each key holds exactly one JSON document.
const (
	SlotSiteSettings  SlotName = "siteSettings"
	SlotLandingPage   SlotName = "landingPage"
	SlotCourseModules SlotName = "courseModules"
	SlotCourseInfo    SlotName = "courseInfo"
	SlotCourseFAQs    SlotName = "courseFaqs"
)

// AllSlots lists every draft slot in export order.
var AllSlots = []SlotName{
	SlotSiteSettings,
	SlotLandingPage,
	SlotCourseModules,
	SlotCourseInfo,
	SlotCourseFAQs,
}

// IsValid reports whether the slot is one of the fixed keys.
func (s SlotName) IsValid() bool {
	for _, slot := range AllSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// IsList reports whether the slot holds an array document.
func (s SlotName) IsList() bool {
	return s == SlotCourseModules || s == SlotCourseFAQs
}

// SiteSettings is the singleton site configuration edited from the admin panel.
// Values are free text; only the presence of the document is checked on publish.
type SiteSettings struct {
	ThemeColor   string `json:"themeColor"`
	HeaderTitle  string `json:"headerTitle"`
	FooterText   string `json:"footerText"`
	ContactEmail string `json:"contactEmail"`
}

// Feature is one entry of the landing page feature grid.
type Feature struct {
	ID          int64  `json:"id"`
	Icon        Icon   `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is one quote shown on the landing page.
type Testimonial struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

// LandingPageContent holds the hero copy and the ordered feature and testimonial lists.
type LandingPageContent struct {
	HeroTitle         string        `json:"heroTitle"`
	HeroSubtitle      string        `json:"heroSubtitle"`
	HeroButtonText    string        `json:"heroButtonText"`
	FeaturesTitle     string        `json:"featuresTitle"`
	Features          []Feature     `json:"features"`
	TestimonialsTitle string        `json:"testimonialsTitle"`
	Testimonials      []Testimonial `json:"testimonials"`
}

// Resource is a downloadable or linked item attached to a module.
type Resource struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Module is one lesson of the course. VideoCode holds raw embed markup and is
// nil until an admin pastes an accepted embed.
type Module struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	VideoCode   *string    `json:"videoCode"`
	Description string     `json:"description"`
	Resources   []Resource `json:"resources"`
}

// CourseInfo holds the free-text sections of the course page.
type CourseInfo struct {
	About   string `json:"about"`
	Thanks  string `json:"thanks"`
	Contact string `json:"contact"`
}

// FAQ is one question and answer pair.
type FAQ struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SiteData aggregates every draft slot. It is the unit of export and publish.
type SiteData struct {
	SiteSettings       *SiteSettings      `json:"siteSettings" validate:"required"`
	LandingPageContent LandingPageContent `json:"landingPageContent"`
	Modules            []Module           `json:"modules"`
	CourseInfo         CourseInfo         `json:"courseInfo"`
	FAQs               []FAQ              `json:"faqs"`
}

// GetID implementations let the generic list operations address records by id.

func (f Feature) GetID() int64     { return f.ID }
func (t Testimonial) GetID() int64 { return t.ID }
func (r Resource) GetID() int64    { return r.ID }
func (m Module) GetID() int64      { return m.ID }
func (q FAQ) GetID() int64         { return q.ID }
