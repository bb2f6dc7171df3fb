// Package vision is a client for Google Cloud Vision web detection.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
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

const (
	defaultBaseURL    = "https://vision.googleapis.com/v1"
	defaultMaxResults = 5
	featureWeb        = "WEB_DETECTION"
)

// ErrNoAnnotation is returned when the API answers without a per-image result.
var ErrNoAnnotation = eris.New("vision: response has no annotation")

// Client annotates images.
type Client interface {
	DetectWeb(ctx context.Context, image []byte) (*WebDetection, error)
}

// WebDetection is the web-detection result for one image. Every list is
// optional in the API response.
type WebDetection struct {
	BestGuessLabels       []BestGuessLabel `json:"bestGuessLabels"`
	WebEntities           []WebEntity      `json:"webEntities"`
	VisuallySimilarImages []WebImage       `json:"visuallySimilarImages"`
	FullMatchingImages    []WebImage       `json:"fullMatchingImages"`
	PagesWithMatching     []WebPage        `json:"pagesWithMatchingImages"`
}

// BestGuessLabel is the API's best guess of what the image depicts.
type BestGuessLabel struct {
	Label        string `json:"label"`
	LanguageCode string `json:"languageCode"`
}

// WebEntity is an entity inferred from similar images on the web.
type WebEntity struct {
	EntityID    string  `json:"entityId"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// WebImage is an image found on the web.
type WebImage struct {
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

// WebPage is a page containing a matching image.
type WebPage struct {
	URL       string `json:"url"`
	PageTitle string `json:"pageTitle"`
}

type annotateRequest struct {
	Requests []imageRequest `json:"requests"`
}

type imageRequest struct {
	Image    image     `json:"image"`
	Features []feature `json:"features"`
}

type image struct {
	Content string `json:"content"`
}

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults"`
}

type annotateResponse struct {
	Responses []imageResponse `json:"responses"`
}

type imageResponse struct {
	WebDetection *WebDetection `json:"webDetection"`
	Error        *Status       `json:"error"`
}

// Status is a per-image error returned inside a 200 response.
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIError is a non-200 response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vision: unexpected status %d: %s", e.StatusCode, e.Body)
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

// WithMaxResults sets the WEB_DETECTION maxResults.
func WithMaxResults(n int) Option {
	return func(c *httpClient) {
		if n > 0 {
			c.maxResults = n
		}
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
	apiKey     string
	baseURL    string
	maxResults int
	http       *http.Client
	limiter    Limiter
}

// NewClient creates a Vision API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		maxResults: defaultMaxResults,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) DetectWeb(ctx context.Context, img []byte) (*WebDetection, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "vision: rate limit wait")
		}
	}

	body, err := json.Marshal(annotateRequest{
		Requests: []imageRequest{{
			Image:    image{Content: base64.StdEncoding.EncodeToString(img)},
			Features: []feature{{Type: featureWeb, MaxResults: c.maxResults}},
		}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "vision: marshal request")
	}

	endpoint := c.baseURL + "/images:annotate?" + url.Values{"key": {c.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "vision: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, eris.Wrap(err, "vision: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "vision: read response")
	}

	if o, ok := c.limiter.(statusObserver); ok {
		o.Observe(resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result annotateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "vision: unmarshal response")
	}

	if len(result.Responses) == 0 {
		return nil, ErrNoAnnotation
	}
	first := result.Responses[0]
	if first.Error != nil && first.Error.Code != 0 {
		return nil, eris.Errorf("vision: annotate failed (code %d): %s", first.Error.Code, first.Error.Message)
	}
	if first.WebDetection == nil {
		return &WebDetection{}, nil
	}

	return first.WebDetection, nil
}
