// Package export turns the draft slots into the content artifact: a
// TypeScript source file declaring the site data, ready to be committed as
// the new baseline or downloaded by an admin.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/coursecms/coursesite/internal/models"
)

// Preamble opens every artifact. The JSON document and Terminator follow it.
const (
	Preamble   = "import type { SiteData } from '../types';\n\nexport const initialData: SiteData = "
	Terminator = ";\n"
)

// Render serializes data as the artifact text. The output depends only on
// data, so repeated calls yield byte-identical results.
func Render(data models.SiteData) ([]byte, error) {
	normalized := normalize(data)

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalized); err != nil {
		return nil, fmt.Errorf("encode site data: %w", err)
	}

	out := make([]byte, 0, len(Preamble)+body.Len()+len(Terminator))
	out = append(out, Preamble...)
	out = append(out, bytes.TrimRight(body.Bytes(), "\n")...)
	out = append(out, Terminator...)
	return out, nil
}

// normalize replaces nil lists with empty ones so the artifact always holds
// arrays where the site expects them.
func normalize(data models.SiteData) models.SiteData {
	if data.LandingPageContent.Features == nil {
		data.LandingPageContent.Features = []models.Feature{}
	}
	if data.LandingPageContent.Testimonials == nil {
		data.LandingPageContent.Testimonials = []models.Testimonial{}
	}
	if data.Modules == nil {
		data.Modules = []models.Module{}
	}
	modules := make([]models.Module, len(data.Modules))
	for i, m := range data.Modules {
		if m.Resources == nil {
			m.Resources = []models.Resource{}
		}
		modules[i] = m
	}
	data.Modules = modules
	if data.FAQs == nil {
		data.FAQs = []models.FAQ{}
	}
	return data
}
