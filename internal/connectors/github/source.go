package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/atticware/ghattic/internal/core/domain"
	"github.com/atticware/ghattic/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ItemSource = (*Source)(nil)

// Source streams issues and pull requests of one repository.
type Source struct {
	client *Client
	config *Config
	log    *zap.Logger
}

// NewSource creates an item source for the configured repository.
func NewSource(client *Client, cfg *Config, log *zap.Logger) *Source {
	return &Source{
		client: client,
		config: cfg,
		log:    log,
	}
}

// Items starts a fresh pagination walk over one item kind and streams
// the results in pagination order. The walk is lazy: the next page is
// only fetched once the consumer has drained the previous one, so a
// rate-limit suspension in the transport pauses the whole pipeline.
//
// The error channel carries the walk's terminal result: nil for clean
// exhaustion, exactly one error otherwise. Both channels close after.
func (s *Source) Items(ctx context.Context, kind domain.ItemKind, since time.Time) (<-chan domain.Item, <-chan error) {
	items := make(chan domain.Item)
	errs := make(chan error, 1)

	go func() {
		defer close(items)
		defer close(errs)
		errs <- s.walk(ctx, kind, since, items)
	}()

	return items, errs
}

// walk pages through the kind's list endpoint from page 1 until the
// response carries no next-page link or a page comes back empty.
func (s *Source) walk(ctx context.Context, kind domain.ItemKind, since time.Time, out chan<- domain.Item) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown item kind %q", kind)
	}

	var (
		page    = 1
		pages   = 0
		yielded = 0
		skipped = 0
	)

	for {
		raw, nextPage, err := s.client.ListPage(ctx, s.listPath(kind), listQuery(kind, since, page))
		if err != nil {
			return fmt.Errorf("%s %s page %d: %w", s.config, kind, page, err)
		}
		pages++

		if len(raw) == 0 {
			break
		}

		for _, body := range raw {
			item, err := parseItem(kind, body)
			if err != nil {
				return fmt.Errorf("%s %s page %d: %w", s.config, kind, page, err)
			}

			// The issues listing embeds pull requests; those are
			// mirrored by the pulls walk instead.
			if item == nil {
				skipped++
				continue
			}

			// Client-side cursor filter. The pulls endpoint has no
			// server-side since parameter, so stale items can appear
			// anywhere before the cursor boundary; boundary-equal
			// items are kept and re-fetched.
			if !since.IsZero() && item.UpdatedAt.Before(since) {
				skipped++
				continue
			}

			select {
			case out <- *item:
				yielded++
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if nextPage == 0 {
			break
		}
		page = nextPage
	}

	s.log.Debug("walk complete",
		zap.String("repo", s.config.String()),
		zap.String("kind", kind.String()),
		zap.Int("pages", pages),
		zap.Int("items", yielded),
		zap.Int("skipped", skipped))

	return nil
}

// listPath returns the kind's list endpoint path.
func (s *Source) listPath(kind domain.ItemKind) string {
	return fmt.Sprintf("repos/%s/%s/%s", s.config.Owner, s.config.Repo, kind)
}

// listQuery builds the list parameters for one page. Both endpoints
// are walked in ascending update order; only the issues endpoint
// understands since, the pulls walk relies on the client-side filter.
func listQuery(kind domain.ItemKind, since time.Time, page int) url.Values {
	q := url.Values{}
	q.Set("state", "all")
	q.Set("sort", "updated")
	q.Set("direction", "asc")
	q.Set("per_page", strconv.Itoa(PerPage))
	q.Set("page", strconv.Itoa(page))
	if kind == domain.KindIssues && !since.IsZero() {
		q.Set("since", since.UTC().Format(time.RFC3339))
	}
	return q
}

// itemProbe picks the fields the engine needs out of an otherwise
// opaque item body.
type itemProbe struct {
	Number      *int             `json:"number"`
	UpdatedAt   *time.Time       `json:"updated_at"`
	PullRequest *json.RawMessage `json:"pull_request"`
}

// parseItem validates an item body and wraps it as a domain item.
// Returns (nil, nil) for pull-request stubs in the issues listing.
// The body itself stays opaque: every field the API provided is
// carried through to the record store untouched.
func parseItem(kind domain.ItemKind, body json.RawMessage) (*domain.Item, error) {
	var probe itemProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: decode item: %w", domain.ErrParse, err)
	}
	if probe.Number == nil {
		return nil, fmt.Errorf("%w: item has no number field", domain.ErrParse)
	}
	if probe.UpdatedAt == nil {
		return nil, fmt.Errorf("%w: item %d has no updated_at field", domain.ErrParse, *probe.Number)
	}

	if kind == domain.KindIssues && probe.PullRequest != nil {
		return nil, nil
	}

	return &domain.Item{
		Kind:      kind,
		Number:    *probe.Number,
		UpdatedAt: probe.UpdatedAt.UTC(),
		Body:      body,
	}, nil
}
