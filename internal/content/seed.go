// Package content holds the editable content model of the course site: the
// seed documents every draft slot falls back to, the list operations used by
// the editors, embed-code acceptance and the theme palette.
package content

import (
	"github.com/coursecms/coursesite/internal/models"
)

// DefaultThemeColor is the seed theme color.
const DefaultThemeColor = "#4682B4"

// SeedSiteSettings returns the default site settings.
func SeedSiteSettings() models.SiteSettings {
	return models.SiteSettings{
		ThemeColor:   DefaultThemeColor,
		HeaderTitle:  "",
		FooterText:   "",
		ContactEmail: "",
	}
}

// SeedLandingPage returns the default landing page content.
func SeedLandingPage() models.LandingPageContent {
	return models.LandingPageContent{
		HeroTitle:      "קורס הורים: התמודדות עם חרדה אצל ילדים",
		HeroSubtitle:   "כלים מעשיים להבנה, זיהוי וליווי של ילדים המתמודדים עם חרדה.",
		HeroButtonText: "למעבר לקורס",
		FeaturesTitle:  "מה תלמדו בקורס?",
		Features: []models.Feature{
			{ID: 1, Icon: models.IconBookOpen, Title: "ידע מבוסס מחקר", Description: "הסברים ברורים על מקורות החרדה ודרכי ביטויה."},
			{ID: 2, Icon: models.IconShieldCheck, Title: "כלים מעשיים", Description: "תרגילים ושיטות לשימוש יומיומי בבית."},
			{ID: 3, Icon: models.IconHeart, Title: "ליווי רגשי", Description: "דרכים לחזק את הקשר והביטחון של הילד."},
		},
		TestimonialsTitle: "מה אומרים המשתתפים",
		Testimonials: []models.Testimonial{
			{ID: 1, Text: "הקורס נתן לי כלים שלא הכרתי ושינה את הדרך שבה אני מגיבה לפחדים של הבת שלי.", Author: "מיכל, אמא לילדה בת 7"},
		},
	}
}

// SeedModules returns the default module list.
func SeedModules() []models.Module {
	return []models.Module{
		{
			ID:          1,
			Title:       "מודול 1: מבוא לחרדת ילדים",
			VideoCode:   nil,
			Description: "במודול זה נבין מהי חרדה, כיצד היא מתבטאת אצל ילדים ומהם הגורמים המרכזיים להופעתה. נלמד להבחין בין פחדים טבעיים לבין חרדה הדורשת התייחסות.",
			Resources: []models.Resource{
				{ID: 1, Title: "דף עבודה: זיהוי סימני חרדה", URL: "#"},
				{ID: 2, Title: "מאמר מומלץ: חרדה בגיל הרך", URL: "#"},
			},
		},
	}
}

// SeedCourseInfo returns the default course info text.
func SeedCourseInfo() models.CourseInfo {
	return models.CourseInfo{
		About:   "כאן יופיע טקסט אודות הקורס. מנהל האתר יכול לערוך אותו.",
		Thanks:  "תודות מיוחדות לכל המשתתפים והתומכים בפרויקט חשוב זה.",
		Contact: "לשאלות ופניות, ניתן לשלוח מייל לכתובת שמופיעה למטה או להשתמש בכפתור הישיר.",
	}
}

// SeedFAQs returns the default FAQ list.
func SeedFAQs() []models.FAQ {
	return []models.FAQ{
		{ID: 1, Question: "לאיזה גילאים הקורס מתאים?", Answer: "הקורס מתאים להורים לילדים בגילאי 4 עד 12, אך העקרונות הנלמדים בו יכולים להיות רלוונטיים גם לגילאים אחרים."},
		{ID: 2, Question: "האם אני מקבל/ת גישה לכל התכנים מיד?", Answer: "כן, עם ההרשמה לקורס כל המודולים והחומרים הנלווים פתוחים לצפייה מיידית וללא הגבלת זמן."},
	}
}

// SeedSiteData returns the complete baseline snapshot.
func SeedSiteData() models.SiteData {
	settings := SeedSiteSettings()
	return models.SiteData{
		SiteSettings:       &settings,
		LandingPageContent: SeedLandingPage(),
		Modules:            SeedModules(),
		CourseInfo:         SeedCourseInfo(),
		FAQs:               SeedFAQs(),
	}
}
