package intake

import (
	"context"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/rotisserie/eris"

	"github.com/sells-group/fakecheck/internal/model"
)

const userAgent = "fakecheck/1.0"

// FetchFeed downloads an RSS, Atom or JSON feed and turns each item into a
// check request. Item descriptions are reduced to plain text.
func FetchFeed(ctx context.Context, url string) ([]model.CheckRequest, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent

	feed, err := fp.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, eris.Wrapf(err, "intake: parse feed %s", url)
	}
	return feedItems(feed), nil
}

// ParseFeed parses an already downloaded feed document.
func ParseFeed(doc string) ([]model.CheckRequest, error) {
	feed, err := gofeed.NewParser().ParseString(doc)
	if err != nil {
		return nil, eris.Wrap(err, "intake: parse feed")
	}
	return feedItems(feed), nil
}

func feedItems(feed *gofeed.Feed) []model.CheckRequest {
	items := make([]model.CheckRequest, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		body := item.Description
		if body == "" {
			body = item.Content
		}
		req := model.CheckRequest{
			Title:   strings.TrimSpace(item.Title),
			Content: plainText(body),
			URL:     strings.TrimSpace(item.Link),
		}
		if req.Title == "" && req.Content == "" && req.URL == "" {
			continue
		}
		items = append(items, req)
	}
	return items
}

// plainText strips markup from a feed description.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(html.UnescapeString(s))
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
