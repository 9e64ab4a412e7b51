package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newsvol/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const googleNewsBaseURL = "https://news.google.com"

// GoogleNewsProvider searches the Google News RSS endpoint for headlines
// published inside a date range.
type GoogleNewsProvider struct {
	client   *http.Client
	baseURL  string
	tracer   trace.Tracer
	language string
	country  string
}

func NewGoogleNewsProvider(tracer trace.Tracer, language, country string, timeout time.Duration) *GoogleNewsProvider {
	if language == "" {
		language = "en"
	}
	if country == "" {
		country = "US"
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &GoogleNewsProvider{
		client:   &http.Client{Timeout: timeout},
		baseURL:  googleNewsBaseURL,
		tracer:   tracer,
		language: language,
		country:  strings.ToUpper(country),
	}
}

func (p *GoogleNewsProvider) Name() string {
	return "google"
}

// FetchHeadlines returns at most q.MaxResults items. Items whose pubDate
// cannot be parsed keep a zero Published time.
func (p *GoogleNewsProvider) FetchHeadlines(ctx context.Context, q NewsQuery) ([]domain.HeadlineRecord, error) {
	ctx, span := p.tracer.Start(ctx, "google-news.fetch-headlines")
	defer span.End()

	query := strings.TrimSpace(q.Query)
	if query == "" {
		query = DefaultNewsQuery
	}
	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	span.SetAttributes(attribute.String("query", query), attribute.Int("max_results", maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.searchURL(query, q.Start, q.End), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google news fetch error %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rss struct {
		Channel struct {
			Items []struct {
				Title   string `xml:"title"`
				Link    string `xml:"link"`
				PubDate string `xml:"pubDate"`
				Source  struct {
					Name string `xml:",chardata"`
					URL  string `xml:"url,attr"`
				} `xml:"source"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	if err := xml.Unmarshal(body, &rss); err != nil {
		return nil, fmt.Errorf("decode google news payload: %w", err)
	}

	records := make([]domain.HeadlineRecord, 0, min(maxResults, len(rss.Channel.Items)))
	for _, row := range rss.Channel.Items {
		if len(records) >= maxResults {
			break
		}
		publisher := sanitizeText(row.Source.Name, 120)
		title := stripPublisherSuffix(sanitizeText(row.Title, 300), publisher)
		if title == "" {
			continue
		}
		records = append(records, domain.HeadlineRecord{
			Title:     title,
			Publisher: publisher,
			URL:       sanitizeText(row.Link, 500),
			Published: parseRSSDate(row.PubDate),
		})
	}
	span.SetAttributes(attribute.Int("items", len(records)))
	return records, nil
}

func (p *GoogleNewsProvider) searchURL(query string, start, end time.Time) string {
	if !start.IsZero() {
		query += " after:" + domain.Day(start).Format(domain.DateLayout)
	}
	if !end.IsZero() {
		// before: is exclusive
		query += " before:" + domain.Day(end).AddDate(0, 0, 1).Format(domain.DateLayout)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", p.language+"-"+p.country)
	params.Set("gl", p.country)
	params.Set("ceid", p.country+":"+p.language)
	return p.baseURL + "/rss/search?" + params.Encode()
}

// Google News appends " - Publisher" to every title.
func stripPublisherSuffix(title, publisher string) string {
	if publisher == "" {
		return title
	}
	return strings.TrimSpace(strings.TrimSuffix(title, " - "+publisher))
}

func parseRSSDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822, time.RFC3339}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
