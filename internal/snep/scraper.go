package snep

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/camilh/snep-tools/internal/chart"
)

const defaultBaseURL = "https://snepmusique.com/les-tops/le-top-de-la-semaine/top-albums/"

var firstNumber = regexp.MustCompile(`\d+`)

// Scraper fetches weekly Top Singles pages from snepmusique.com. Requests
// are paced so a multi-week catch-up doesn't hammer the site.
type Scraper struct {
	BaseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewScraper() *Scraper {
	return &Scraper{
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
		limiter: rate.NewLimiter(rate.Every(1500*time.Millisecond), 1),
	}
}

// FetchWeek downloads and parses one week's chart. A missing or empty page
// yields an empty slice and no error so the caller can skip the week.
func (s *Scraper) FetchWeek(ctx context.Context, year, week int) ([]chart.Entry, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	q := url.Values{
		"categorie": {"Top Singles"},
		"annee":     {strconv.Itoa(year)},
		"semaine":   {strconv.Itoa(week)},
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "snep-tools/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching week %d/%d: %w", year, week, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching week %d/%d: status %d", year, week, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing week %d/%d: %w", year, week, err)
	}

	return parseChart(doc, year, week), nil
}

// parseChart extracts the ranked entries from a chart page. The SNEP markup
// uses article.classement-item with a div.rang rank cell; older pages used
// div.item.
func parseChart(doc *goquery.Document, year, week int) []chart.Entry {
	items := doc.Find("article.classement-item")
	if items.Length() == 0 {
		items = doc.Find("div.item")
	}

	var entries []chart.Entry
	items.Each(func(_ int, item *goquery.Selection) {
		// div.rang_precedent holds last week's position; skip it.
		rankText := item.Find("div.rang").Not(".rang_precedent").First().Text()
		rank, err := strconv.Atoi(firstNumber.FindString(rankText))
		if err != nil {
			return
		}

		title := item.Find(".titre, .title").First().Text()
		artist := item.Find(".artiste, .artist").First().Text()
		publisher := item.Find(".editeur, .label").First().Text()
		if title == "" {
			return
		}

		e := buildEntry(rank, title, artist, publisher)
		e.Year = year
		e.Week = week
		entries = append(entries, e)
	})
	return entries
}
