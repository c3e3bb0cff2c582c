// Package news aggregates surf news from external RSS feeds. Feed content is
// opaque externally-sourced material; the only transformations applied are
// HTML stripping, snippet truncation and date ordering.
package news

import (
	"context"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	itemsPerFeed  = 2
	maxItems      = 8
	snippetLength = 200
)

// Source is a named RSS feed.
type Source struct {
	Name string
	URL  string
}

// Item is one aggregated news entry.
type Item struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
	Source  string `json:"source"`
}

// Service fetches and caches aggregated news. A feed that fails is skipped;
// when every feed fails the result is an empty list, not an error.
type Service struct {
	parser  *gofeed.Parser
	sources []Source
	ttl     time.Duration

	mu        sync.Mutex
	cached    []Item
	fetchedAt time.Time
}

func NewService(client *http.Client, sources []Source, ttl time.Duration) *Service {
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "Mozilla/5.0 (compatible; surfcast/1.0)"
	return &Service{
		parser:  parser,
		sources: sources,
		ttl:     ttl,
	}
}

// Latest returns the aggregated news items, newest first, serving the cache
// while it is fresh.
func (s *Service) Latest(ctx context.Context) []Item {
	s.mu.Lock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.ttl {
		items := s.cached
		s.mu.Unlock()
		return items
	}
	s.mu.Unlock()

	items := s.fetchAll(ctx)

	s.mu.Lock()
	s.cached = items
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return items
}

type dated struct {
	item Item
	at   time.Time
}

func (s *Service) fetchAll(ctx context.Context) []Item {
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		all []dated
	)

	for _, src := range s.sources {
		src := src
		wg.Add(1)
		go func() {
			defer wg.Done()
			items := s.fetchFeed(ctx, src)
			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(all, func(i, j int) bool {
		return all[i].at.After(all[j].at)
	})

	out := make([]Item, 0, maxItems)
	for _, d := range all {
		if len(out) >= maxItems {
			break
		}
		out = append(out, d.item)
	}
	return out
}

func (s *Service) fetchFeed(ctx context.Context, src Source) []dated {
	feed, err := s.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		log.Printf("news: feed %s failed: %v", src.Name, err)
		return nil
	}

	var out []dated
	for _, entry := range feed.Items {
		if len(out) >= itemsPerFeed {
			break
		}
		if entry.Title == "" || entry.Link == "" || skipLink(entry.Link) {
			continue
		}

		at := time.Now()
		date := at.Format(time.RFC3339)
		if entry.PublishedParsed != nil {
			at = *entry.PublishedParsed
			date = entry.Published
		}

		out = append(out, dated{
			at: at,
			item: Item{
				Title:   stripHTML(entry.Title),
				Link:    entry.Link,
				Snippet: truncate(stripHTML(entry.Description), snippetLength),
				Date:    date,
				Source:  src.Name,
			},
		})
	}
	return out
}
