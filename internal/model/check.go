package model

import (
	"math"
	"strings"
)

// CheckRequest is a news item submitted for verification. All fields are
// optional; at least one should carry text for a useful lookup.
type CheckRequest struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	URL     string `json:"url" yaml:"url"`
}

// Query returns the string sent to the fact-check provider: the URL if
// present, else the title, else the content.
func (r CheckRequest) Query() string {
	switch {
	case strings.TrimSpace(r.URL) != "":
		return r.URL
	case strings.TrimSpace(r.Title) != "":
		return r.Title
	default:
		return r.Content
	}
}

// Text joins title and content for keyword inspection.
func (r CheckRequest) Text() string {
	return r.Title + " " + r.Content
}

// MediaCheckRequest is an uploaded media payload with its declared MIME type.
type MediaCheckRequest struct {
	Data        []byte
	ContentType string
	Filename    string
}

// IsImage reports whether the declared content type is an image type.
func (r MediaCheckRequest) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(r.ContentType)), "image/")
}

// Verdict is the heuristic outcome of a check.
type Verdict struct {
	IsFake      bool     `json:"is_fake" yaml:"is_fake"`
	Confidence  float64  `json:"confidence" yaml:"confidence"`
	Sources     []string `json:"sources" yaml:"sources"`
	Summary     string   `json:"summary" yaml:"summary"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

// NewVerdict returns a neutral verdict with non-nil slices so that empty
// lists serialize as [] rather than null.
func NewVerdict(summary string) Verdict {
	return Verdict{
		Confidence:  0.5,
		Sources:     []string{},
		Summary:     summary,
		Suggestions: []string{},
	}
}

// Suggest appends a suggestion.
func (v *Verdict) Suggest(s string) {
	v.Suggestions = append(v.Suggestions, s)
}

// Clamp bounds Confidence to [0, 1] and rounds it to four decimal places so
// that additive adjustments compare exactly against thresholds.
func (v *Verdict) Clamp() {
	v.Confidence = math.Round(v.Confidence*1e4) / 1e4
	if v.Confidence < 0 {
		v.Confidence = 0
	}
	if v.Confidence > 1 {
		v.Confidence = 1
	}
}
