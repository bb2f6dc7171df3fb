package verdict

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultSensationalPatterns flag clickbait phrasing in English and
// Vietnamese. Matching is case-insensitive on normalized text and a pattern
// may occur anywhere, including inside a longer word or hashtag.
var DefaultSensationalPatterns = []string{
	`breaking|shocking`,
	`100\s*%\s*(true|false|real|fake)`,
	`rumou?r`,
	`scam`,
	`secret`,
	`share\s+(this\s+)?now`,
	`viral`,
	`you\s+(won['’]?t|will\s+not)\s+believe`,
	`(gây\s+)?sốc`,
	`tin\s+đồn`,
	`chia\s+sẻ\s+ngay`,
	`bí\s+mật`,
	`lừa\s+đảo`,
	`100\s*%\s*sự\s+thật`,
}

// DefaultTrustedDomains are news outlets whose presence among the sources
// raises confidence.
var DefaultTrustedDomains = []string{
	"bbc.co.uk",
	"bbc.com",
	"reuters.com",
	"apnews.com",
	"afp.com",
	"nytimes.com",
	"theguardian.com",
	"npr.org",
	"washingtonpost.com",
	"vnexpress.net",
	"tuoitre.vn",
	"thanhnien.vn",
	"nhandan.vn",
	"vtv.vn",
}

// fakeRatingTokens mark a reviewer's rating as debunking the claim. "sai" is
// Vietnamese for "false".
var fakeRatingTokens = []string{"false", "fake", "hoax", "sai"}

// Rules holds the compiled keyword and domain lists.
type Rules struct {
	sensational []*regexp.Regexp
	trusted     []string
}

// NewRules compiles the given patterns and domains. An empty list falls back
// to the corresponding default.
func NewRules(patterns, domains []string) (*Rules, error) {
	if len(patterns) == 0 {
		patterns = DefaultSensationalPatterns
	}
	if len(domains) == 0 {
		domains = DefaultTrustedDomains
	}

	r := &Rules{}
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + norm.NFC.String(p))
		if err != nil {
			return nil, eris.Wrapf(err, "verdict: compile pattern %q", p)
		}
		r.sensational = append(r.sensational, re)
	}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			r.trusted = append(r.trusted, d)
		}
	}
	return r, nil
}

// DefaultRules returns the built-in rules.
func DefaultRules() *Rules {
	r, err := NewRules(nil, nil)
	if err != nil {
		panic(err)
	}
	return r
}

// IsSensational reports whether any sensational pattern occurs in text.
func (r *Rules) IsSensational(text string) bool {
	text = fold(text)
	for _, re := range r.sensational {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// HasTrustedSource reports whether any URL contains a trusted domain.
func (r *Rules) HasTrustedSource(urls []string) bool {
	for _, u := range urls {
		u = strings.ToLower(u)
		for _, d := range r.trusted {
			if strings.Contains(u, d) {
				return true
			}
		}
	}
	return false
}

func isFakeRating(rating string) bool {
	rating = fold(rating)
	for _, tok := range fakeRatingTokens {
		if strings.Contains(rating, tok) {
			return true
		}
	}
	return false
}

// fold normalizes to NFC and case-folds so that decomposed Vietnamese input
// matches composed patterns.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
