package editor

import (
	"context"
	"fmt"

	"github.com/coursecms/coursesite/internal/content"
	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/models"
)

// AdminState is the part of Admin that the content editor consults.
type AdminState interface {
	IsAdmin() bool
}

// ContentEditor applies the editing operations of every section to the draft
// store. Each method is one whole-document replace of the owning slot.
type ContentEditor struct {
	ids   *content.IDGenerator
	admin AdminState

	settings draftstore.Setter[models.SiteSettings]
	landing  draftstore.Setter[models.LandingPageContent]
	modules  draftstore.Setter[[]models.Module]
	info     draftstore.Setter[models.CourseInfo]
	faqs     draftstore.Setter[[]models.FAQ]
}

// NewContentEditor creates an editor acting on behalf of admin.
//
// Parameters:
//   - store: The draft store holding the slots
//   - ids: Shared id source for new records
//   - admin: Admin state of the acting session
//
// Returns:
//   - A ContentEditor that rejects every mutation while admin mode is off
func NewContentEditor(store *draftstore.Store, ids *content.IDGenerator, admin AdminState) *ContentEditor {
	if store == nil {
		panic("draft store cannot be nil")
	}
	if ids == nil {
		ids = content.NewIDGenerator()
	}
	return &ContentEditor{
		ids:      ids,
		admin:    admin,
		settings: draftstore.NewSetter(store, models.SlotSiteSettings, content.SeedSiteSettings()),
		landing:  draftstore.NewSetter(store, models.SlotLandingPage, content.SeedLandingPage()),
		modules:  draftstore.NewSetter(store, models.SlotCourseModules, content.SeedModules()),
		info:     draftstore.NewSetter(store, models.SlotCourseInfo, content.SeedCourseInfo()),
		faqs:     draftstore.NewSetter(store, models.SlotCourseFAQs, content.SeedFAQs()),
	}
}

// CanEdit reports whether the acting session is in admin mode.
func (e *ContentEditor) CanEdit() bool {
	return e.admin != nil && e.admin.IsAdmin()
}

func (e *ContentEditor) authorize() error {
	if !e.CanEdit() {
		return ErrNotAdmin
	}
	return nil
}

// confirmDelete checks admin mode and then the confirmation step of a delete.
func (e *ContentEditor) confirmDelete(confirmed bool) error {
	if err := e.authorize(); err != nil {
		return err
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	return nil
}

func unknownField(record, field string) error {
	return fmt.Errorf("%w: %s.%s", ErrUnknownField, record, field)
}

func notFound(record string, id int64) error {
	return fmt.Errorf("%w: %s %d", ErrRecordNotFound, record, id)
}

// UpdateSiteSetting replaces one field of the site settings.
func (e *ContentEditor) UpdateSiteSetting(ctx context.Context, field, value string) (models.SiteSettings, error) {
	if err := e.authorize(); err != nil {
		return models.SiteSettings{}, err
	}
	return e.settings.Update(ctx, func(s models.SiteSettings) (models.SiteSettings, error) {
		switch field {
		case "themeColor":
			s.ThemeColor = value
		case "headerTitle":
			s.HeaderTitle = value
		case "footerText":
			s.FooterText = value
		case "contactEmail":
			s.ContactEmail = value
		default:
			return s, unknownField("siteSettings", field)
		}
		return s, nil
	})
}

// UpdateCourseInfo replaces one free-text section of the course page.
func (e *ContentEditor) UpdateCourseInfo(ctx context.Context, field, value string) (models.CourseInfo, error) {
	if err := e.authorize(); err != nil {
		return models.CourseInfo{}, err
	}
	return e.info.Update(ctx, func(info models.CourseInfo) (models.CourseInfo, error) {
		switch field {
		case "about":
			info.About = value
		case "thanks":
			info.Thanks = value
		case "contact":
			info.Contact = value
		default:
			return info, unknownField("courseInfo", field)
		}
		return info, nil
	})
}

// UpdateLandingText replaces one of the landing page headings.
func (e *ContentEditor) UpdateLandingText(ctx context.Context, field, value string) (models.LandingPageContent, error) {
	return e.updateLanding(ctx, func(p models.LandingPageContent) (models.LandingPageContent, error) {
		switch field {
		case "heroTitle":
			p.HeroTitle = value
		case "heroSubtitle":
			p.HeroSubtitle = value
		case "heroButtonText":
			p.HeroButtonText = value
		case "featuresTitle":
			p.FeaturesTitle = value
		case "testimonialsTitle":
			p.TestimonialsTitle = value
		default:
			return p, unknownField("landingPage", field)
		}
		return p, nil
	})
}

func (e *ContentEditor) updateLanding(ctx context.Context, fn func(models.LandingPageContent) (models.LandingPageContent, error)) (models.LandingPageContent, error) {
	if err := e.authorize(); err != nil {
		return models.LandingPageContent{}, err
	}
	return e.landing.Update(ctx, fn)
}

// AddFeature appends a placeholder feature.
func (e *ContentEditor) AddFeature(ctx context.Context) (models.Feature, error) {
	var added models.Feature
	_, err := e.updateLanding(ctx, func(p models.LandingPageContent) (models.LandingPageContent, error) {
		added = content.NewFeature(content.NextFor(e.ids, p.Features))
		p.Features = content.Append(p.Features, added)
		return p, nil
	})
	return added, err
}

// UpdateFeature replaces one field of a feature. Icons outside the supported set are rejected.
func (e *ContentEditor) UpdateFeature(ctx context.Context, id int64, field, value string) (models.LandingPageContent, error) {
	return e.updateLanding(ctx, func(p models.LandingPageContent) (models.LandingPageContent, error) {
		var fieldErr error
		features, ok := content.UpdateByID(p.Features, id, func(f models.Feature) models.Feature {
			switch field {
			case "icon":
				if !models.Icon(value).IsSupported() {
					fieldErr = fmt.Errorf("%w: unsupported icon %q", ErrUnknownField, value)
					return f
				}
				f.Icon = models.Icon(value)
			case "title":
				f.Title = value
			case "description":
				f.Description = value
			default:
				fieldErr = unknownField("feature", field)
			}
			return f
		})
		if !ok {
			return p, notFound("feature", id)
		}
		if fieldErr != nil {
			return p, fieldErr
		}
		p.Features = features
		return p, nil
	})
}

// DeleteFeature removes a feature once the deletion is confirmed.
func (e *ContentEditor) DeleteFeature(ctx context.Context, id int64, confirmed bool) (models.LandingPageContent, error) {
	if err := e.confirmDelete(confirmed); err != nil {
		return models.LandingPageContent{}, err
	}
	return e.updateLanding(ctx, func(p models.LandingPageContent) (models.LandingPageContent, error) {
		features, removed := content.DeleteByID(p.Features, id)
		if !removed {
			return p, draftstore.ErrUnchanged
		}
		p.Features = features
		return p, nil
	})
}

// AddTestimonial appends a placeholder testimonial.
func (e *ContentEditor) AddTestimonial(ctx context.Context) (models.Testimonial, error) {
	var added models.Testimonial
	_, err := e.updateLanding(ctx, func(p models.LandingPageContent) (models.LandingPageContent, error) {
		added = content.NewTestimonial(content.NextFor(e.ids, p.Testimonials))
		p.Testimonials = content.Append(p.Testimonials, added)
		return p, nil
	})
	return added, err
}

// UpdateTestimonial replaces the text or author of a testimonial.
func (e *ContentEditor) UpdateTestimonial(ctx context.Context, id int64, field, value string) (models.LandingPageContent, error) {
	return e.updateLanding(ctx, func(p models.LandingPageContent) (models.LandingPageContent, error) {
		var fieldErr error
		testimonials, ok := content.UpdateByID(p.Testimonials, id, func(t models.Testimonial) models.Testimonial {
			switch field {
			case "text":
				t.Text = value
			case "author":
				t.Author = value
			default:
				fieldErr = unknownField("testimonial", field)
			}
			return t
		})
		if !ok {
			return p, notFound("testimonial", id)
		}
		if fieldErr != nil {
			return p, fieldErr
		}
		p.Testimonials = testimonials
		return p, nil
	})
}

// DeleteTestimonial removes a testimonial once the deletion is confirmed.
func (e *ContentEditor) DeleteTestimonial(ctx context.Context, id int64, confirmed bool) (models.LandingPageContent, error) {
	if err := e.confirmDelete(confirmed); err != nil {
		return models.LandingPageContent{}, err
	}
	return e.updateLanding(ctx, func(p models.LandingPageContent) (models.LandingPageContent, error) {
		testimonials, removed := content.DeleteByID(p.Testimonials, id)
		if !removed {
			return p, draftstore.ErrUnchanged
		}
		p.Testimonials = testimonials
		return p, nil
	})
}

func (e *ContentEditor) updateModules(ctx context.Context, fn func([]models.Module) ([]models.Module, error)) ([]models.Module, error) {
	if err := e.authorize(); err != nil {
		return nil, err
	}
	return e.modules.Update(ctx, fn)
}

// updateModule applies fn to the module matching id.
func (e *ContentEditor) updateModule(ctx context.Context, id int64, fn func(models.Module) (models.Module, error)) ([]models.Module, error) {
	return e.updateModules(ctx, func(modules []models.Module) ([]models.Module, error) {
		var innerErr error
		updated, ok := content.UpdateByID(modules, id, func(m models.Module) models.Module {
			next, err := fn(m)
			if err != nil {
				innerErr = err
				return m
			}
			return next
		})
		if !ok {
			return modules, notFound("module", id)
		}
		if innerErr != nil {
			return modules, innerErr
		}
		return updated, nil
	})
}

// AddModule appends a placeholder module numbered after the existing ones.
func (e *ContentEditor) AddModule(ctx context.Context) (models.Module, error) {
	var added models.Module
	_, err := e.updateModules(ctx, func(modules []models.Module) ([]models.Module, error) {
		added = content.NewModule(content.NextFor(e.ids, modules), len(modules)+1)
		return content.Append(modules, added), nil
	})
	return added, err
}

// UpdateModule replaces the title or description of a module.
func (e *ContentEditor) UpdateModule(ctx context.Context, id int64, field, value string) ([]models.Module, error) {
	return e.updateModule(ctx, id, func(m models.Module) (models.Module, error) {
		switch field {
		case "title":
			m.Title = value
		case "description":
			m.Description = value
		default:
			return m, unknownField("module", field)
		}
		return m, nil
	})
}

// DeleteModule removes a module once the deletion is confirmed.
func (e *ContentEditor) DeleteModule(ctx context.Context, id int64, confirmed bool) ([]models.Module, error) {
	if err := e.confirmDelete(confirmed); err != nil {
		return nil, err
	}
	return e.updateModules(ctx, func(modules []models.Module) ([]models.Module, error) {
		out, removed := content.DeleteByID(modules, id)
		if !removed {
			return modules, draftstore.ErrUnchanged
		}
		return out, nil
	})
}

// MoveModule swaps a module with its neighbour. At either boundary, or for an
// unknown id, the slot is left untouched.
func (e *ContentEditor) MoveModule(ctx context.Context, id int64, dir content.Direction) ([]models.Module, error) {
	return e.updateModules(ctx, func(modules []models.Module) ([]models.Module, error) {
		out, moved := content.Move(modules, id, dir)
		if !moved {
			return modules, draftstore.ErrUnchanged
		}
		return out, nil
	})
}

// SetModuleEmbed stores pasted embed markup on a module. Markup without an
// iframe is rejected and the module keeps its previous embed.
func (e *ContentEditor) SetModuleEmbed(ctx context.Context, id int64, raw string) ([]models.Module, error) {
	if err := e.authorize(); err != nil {
		return nil, err
	}
	code, err := content.ValidateEmbed(raw)
	if err != nil {
		return nil, err
	}
	return e.updateModule(ctx, id, func(m models.Module) (models.Module, error) {
		m.VideoCode = &code
		return m, nil
	})
}

// ClearModuleEmbed removes the embed of a module.
func (e *ContentEditor) ClearModuleEmbed(ctx context.Context, id int64) ([]models.Module, error) {
	return e.updateModule(ctx, id, func(m models.Module) (models.Module, error) {
		m.VideoCode = nil
		return m, nil
	})
}

// AddResource appends a placeholder link to a module.
func (e *ContentEditor) AddResource(ctx context.Context, moduleID int64) (models.Resource, error) {
	var added models.Resource
	_, err := e.updateModule(ctx, moduleID, func(m models.Module) (models.Module, error) {
		added = content.NewResource(content.NextFor(e.ids, m.Resources))
		m.Resources = content.Append(m.Resources, added)
		return m, nil
	})
	return added, err
}

// UpdateResource replaces the title or url of a module resource.
func (e *ContentEditor) UpdateResource(ctx context.Context, moduleID, resourceID int64, field, value string) ([]models.Module, error) {
	return e.updateModule(ctx, moduleID, func(m models.Module) (models.Module, error) {
		var fieldErr error
		resources, ok := content.UpdateByID(m.Resources, resourceID, func(r models.Resource) models.Resource {
			switch field {
			case "title":
				r.Title = value
			case "url":
				r.URL = value
			default:
				fieldErr = unknownField("resource", field)
			}
			return r
		})
		if !ok {
			return m, notFound("resource", resourceID)
		}
		if fieldErr != nil {
			return m, fieldErr
		}
		m.Resources = resources
		return m, nil
	})
}

// DeleteResource removes a resource from a module once the deletion is confirmed.
func (e *ContentEditor) DeleteResource(ctx context.Context, moduleID, resourceID int64, confirmed bool) ([]models.Module, error) {
	if err := e.confirmDelete(confirmed); err != nil {
		return nil, err
	}
	return e.updateModule(ctx, moduleID, func(m models.Module) (models.Module, error) {
		resources, removed := content.DeleteByID(m.Resources, resourceID)
		if !removed {
			return m, draftstore.ErrUnchanged
		}
		m.Resources = resources
		return m, nil
	})
}

func (e *ContentEditor) updateFAQs(ctx context.Context, fn func([]models.FAQ) ([]models.FAQ, error)) ([]models.FAQ, error) {
	if err := e.authorize(); err != nil {
		return nil, err
	}
	return e.faqs.Update(ctx, fn)
}

// AddFAQ appends a placeholder question.
func (e *ContentEditor) AddFAQ(ctx context.Context) (models.FAQ, error) {
	var added models.FAQ
	_, err := e.updateFAQs(ctx, func(faqs []models.FAQ) ([]models.FAQ, error) {
		added = content.NewFAQ(content.NextFor(e.ids, faqs))
		return content.Append(faqs, added), nil
	})
	return added, err
}

// UpdateFAQ replaces the question or answer of an entry.
func (e *ContentEditor) UpdateFAQ(ctx context.Context, id int64, field, value string) ([]models.FAQ, error) {
	return e.updateFAQs(ctx, func(faqs []models.FAQ) ([]models.FAQ, error) {
		var fieldErr error
		out, ok := content.UpdateByID(faqs, id, func(q models.FAQ) models.FAQ {
			switch field {
			case "question":
				q.Question = value
			case "answer":
				q.Answer = value
			default:
				fieldErr = unknownField("faq", field)
			}
			return q
		})
		if !ok {
			return faqs, notFound("faq", id)
		}
		if fieldErr != nil {
			return faqs, fieldErr
		}
		return out, nil
	})
}

// DeleteFAQ removes an entry once the deletion is confirmed.
func (e *ContentEditor) DeleteFAQ(ctx context.Context, id int64, confirmed bool) ([]models.FAQ, error) {
	if err := e.confirmDelete(confirmed); err != nil {
		return nil, err
	}
	return e.updateFAQs(ctx, func(faqs []models.FAQ) ([]models.FAQ, error) {
		out, removed := content.DeleteByID(faqs, id)
		if !removed {
			return faqs, draftstore.ErrUnchanged
		}
		return out, nil
	})
}
