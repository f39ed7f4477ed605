package content

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips scripts, styles and other unsafe markup from HTML content
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer makes a sanitizer allowing the markup usual for user generated content
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.UGCPolicy()}
}

// Sanitize returns the cleaned HTML
func (s *Sanitizer) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}
