// Package factcheck is a client for the Google Fact Check Tools claim search API.
package factcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://factchecktools.googleapis.com/v1alpha1"

// Client searches published claim reviews.
type Client interface {
	Search(ctx context.Context, query string) (*SearchResponse, error)
}

// SearchResponse is the response from claims:search. Claims is absent when
// nothing matched.
type SearchResponse struct {
	Claims        []Claim `json:"claims"`
	NextPageToken string  `json:"nextPageToken"`
}

// Claim is a claim and the reviews published about it.
type Claim struct {
	Text        string        `json:"text"`
	Claimant    string        `json:"claimant"`
	ClaimDate   string        `json:"claimDate"`
	ClaimReview []ClaimReview `json:"claimReview"`
}

// FirstReview returns the claim's first review, if it has one.
func (c Claim) FirstReview() (ClaimReview, bool) {
	if len(c.ClaimReview) == 0 {
		return ClaimReview{}, false
	}
	return c.ClaimReview[0], true
}

// ClaimReview is one fact-checker's rating of a claim.
type ClaimReview struct {
	Publisher     Publisher `json:"publisher"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	ReviewDate    string    `json:"reviewDate"`
	TextualRating string    `json:"textualRating"`
	LanguageCode  string    `json:"languageCode"`
}

// Publisher identifies the reviewing organization.
type Publisher struct {
	Name string `json:"name"`
	Site string `json:"site"`
}

// APIError is a non-200 response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("factcheck: unexpected status %d: %s", e.StatusCode, e.Body)
}

// HTTPStatus returns the response status code.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL. Empty keeps the default.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithLanguageCode restricts results to a BCP-47 language, e.g. "vi".
func WithLanguageCode(code string) Option {
	return func(c *httpClient) {
		c.languageCode = code
	}
}

// Limiter paces outbound requests. *rate.Limiter satisfies it. A limiter
// that also has an Observe(status int) method is told each response status.
type Limiter interface {
	Wait(ctx context.Context) error
}

type statusObserver interface {
	Observe(status int)
}

// WithLimiter paces outbound requests.
func WithLimiter(l Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

type httpClient struct {
	apiKey       string
	baseURL      string
	languageCode string
	http         *http.Client
	limiter      Limiter
}

// NewClient creates a Fact Check Tools client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string) (*SearchResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "factcheck: rate limit wait")
		}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)
	if c.languageCode != "" {
		params.Set("languageCode", c.languageCode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/claims:search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "factcheck: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(stripURL(err), "factcheck: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "factcheck: read response")
	}

	if o, ok := c.limiter.(statusObserver); ok {
		o.Observe(resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "factcheck: unmarshal response")
	}

	return &result, nil
}

// stripURL drops the request URL from transport errors; it carries the API key.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
