package pagination

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/rogomes/wbdata/pkg/logging"
)

// PerPage is the fixed page size sent with every request.
const PerPage = 1000

var wbPagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wb_pages_fetched_total",
	Help: "Total number of result pages processed",
})

// PageFetcher resolves one logical request to a parsed JSON page. It is
// implemented by *client.Client.
type PageFetcher interface {
	GetPage(ctx context.Context, url string, params map[string]string, useCache bool) (json.RawMessage, error)
}

// Record is one row of an API result page.
type Record map[string]any

// ResultSet is the aggregated, page-ordered record collection of one walk.
type ResultSet struct {
	Records []Record

	// LastUpdated is the data revision date reported by the final page's
	// envelope; zero when the API did not report one.
	LastUpdated time.Time
}

// Fetcher drives repeated page fetches until the walk converges.
type Fetcher struct {
	pages  PageFetcher
	logger zerolog.Logger
}

// NewFetcher creates a fetcher on top of a page source.
func NewFetcher(pages PageFetcher) *Fetcher {
	return &Fetcher{
		pages:  pages,
		logger: logging.NewLogger("pagination"),
	}
}

// FetchAll retrieves every page of url and aggregates the records in page
// order. Caller params are copied, never mutated; format, per_page, and
// (from the second request on) page are set on the copy. The walk runs
// until the envelope reports the current page equals the total page count.
// An API that never converges keeps the walk going; remote well-behavedness
// is assumed rather than bounded here.
func (f *Fetcher) FetchAll(ctx context.Context, url string, params map[string]string, useCache bool) (*ResultSet, error) {
	args := make(map[string]string, len(params)+3)
	for name, value := range params {
		args[name] = value
	}
	args["format"] = "json"
	args["per_page"] = strconv.Itoa(PerPage)

	result := &ResultSet{}
	var last *page
	pages, thisPage := 0, 1
	for pages != thisPage {
		raw, err := f.pages.GetPage(ctx, url, args, useCache)
		if err != nil {
			return nil, err
		}
		pg, err := decodePage(raw)
		if err != nil {
			return nil, err
		}

		result.Records = append(result.Records, pg.records...)
		thisPage = int(pg.env.Page)
		pages = int(pg.env.Pages)
		last = pg

		wbPagesFetchedTotal.Inc()
		f.logger.Debug().
			Str("url", url).
			Int("page", thisPage).
			Int("pages", pages).
			Msg("Processed page")

		args["page"] = strconv.Itoa(thisPage + 1)
	}

	for _, record := range result.Records {
		if id, ok := record["id"].(string); ok {
			record["id"] = strings.TrimSpace(id)
		}
	}

	if last != nil && last.env.LastUpdated != "" {
		if updated, err := time.Parse("2006-01-02", last.env.LastUpdated); err == nil {
			result.LastUpdated = updated
		}
	}

	return result, nil
}
