package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
	"github.com/custodia-labs/reader-bridge/internal/core/ports/driven"
	"github.com/custodia-labs/reader-bridge/internal/core/ports/driving"
)

// savedUsing identifies this bridge as the source of saved documents.
const savedUsing = "reader-bridge"

// Ensure libraryService implements LibraryService
var _ driving.LibraryService = (*libraryService)(nil)

// libraryService implements the LibraryService interface. Fetches run
// strictly sequentially per call, one page in flight at a time, so the
// cursor chain stays correct; concurrent calls for different queries are
// independent and only meet at the store upsert.
type libraryService struct {
	client driven.ReaderClient
	store  driven.DocumentStore
	feeds  driven.FeedParser
	logger *slog.Logger
}

// LibraryConfig holds dependencies for the library service.
type LibraryConfig struct {
	Client driven.ReaderClient
	Store  driven.DocumentStore
	Feeds  driven.FeedParser
	Logger *slog.Logger
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(cfg LibraryConfig) driving.LibraryService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &libraryService{
		client: cfg.Client,
		store:  cfg.Store,
		feeds:  cfg.Feeds,
		logger: logger,
	}
}

// FetchDocuments retrieves every document matching the filters, following
// page cursors until a page arrives without one. Each page's documents
// are upserted into the store as they land, so a transport failure midway
// leaves earlier pages cached while the error still propagates.
func (s *libraryService) FetchDocuments(ctx context.Context, location, category, updatedAfter string) ([]domain.Document, error) {
	query, err := buildQuery(location, category, updatedAfter)
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	pages := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page, err := s.client.List(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", pages+1, err)
		}
		pages++

		for _, doc := range page.Results {
			s.store.Upsert(doc)
		}
		docs = append(docs, page.Results...)

		// The terminal page carries no cursor; its results are already
		// accumulated above.
		if page.NextPageCursor == "" || page.NextPageCursor == query.PageCursor {
			break
		}
		query.PageCursor = page.NextPageCursor
	}

	s.logger.Info("fetched documents",
		"location", location,
		"pages", pages,
		"count", len(docs),
	)
	return docs, nil
}

// buildQuery validates the raw filter values before any I/O happens.
func buildQuery(location, category, updatedAfter string) (domain.ListQuery, error) {
	loc, err := domain.ParseLocation(location)
	if err != nil {
		return domain.ListQuery{}, err
	}
	query := domain.ListQuery{Location: loc, WithHTMLContent: true}

	if category != "" {
		cat, err := domain.ParseCategory(category)
		if err != nil {
			return domain.ListQuery{}, err
		}
		query.Category = cat
	}

	if updatedAfter != "" {
		normalized, ok := normalizeTimestamp(updatedAfter)
		if !ok {
			return domain.ListQuery{}, fmt.Errorf("%w: updated_after must be an ISO 8601 timestamp, got %q", domain.ErrInvalidInput, updatedAfter)
		}
		query.UpdatedAfter = normalized
	}

	return query, nil
}

// normalizeTimestamp accepts the common ISO 8601 shapes and renders a
// full timestamp: a bare date becomes midnight of that day, a naive
// datetime passes through, an offset-carrying one keeps its offset.
func normalizeTimestamp(s string) (string, bool) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.Format(time.RFC3339), true
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Format("2006-01-02T15:04:05"), true
		}
	}
	return "", false
}

// SaveURL saves a single URL to Reader.
func (s *libraryService) SaveURL(ctx context.Context, rawURL string) (bool, *domain.SaveResult, error) {
	req := domain.SaveRequest{URL: rawURL, SavedUsing: savedUsing}
	if err := req.Validate(); err != nil {
		return false, nil, err
	}

	existed, result, err := s.client.Save(ctx, req)
	if err != nil {
		return false, nil, fmt.Errorf("save document: %w", err)
	}

	s.logger.Info("saved document", "id", result.ID, "existed", existed)
	return existed, result, nil
}

// ImportFeed parses a syndication feed and saves each entry URL to
// Reader. Entries that fail to save are counted and logged, not fatal.
func (s *libraryService) ImportFeed(ctx context.Context, feedURL string) (*domain.FeedImport, error) {
	if feedURL == "" {
		return nil, fmt.Errorf("%w: feed_url is required", domain.ErrInvalidInput)
	}

	title, entries, err := s.feeds.Parse(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	imp := &domain.FeedImport{FeedTitle: title}
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return imp, ctx.Err()
		default:
		}

		if entry.URL == "" {
			imp.Failed++
			continue
		}

		existed, _, err := s.client.Save(ctx, domain.SaveRequest{
			URL:        entry.URL,
			Title:      entry.Title,
			SavedUsing: savedUsing,
		})
		if err != nil {
			s.logger.Warn("failed to save feed entry", "url", entry.URL, "error", err)
			imp.Failed++
			continue
		}
		if existed {
			imp.Existed++
		} else {
			imp.Saved++
		}
	}

	s.logger.Info("imported feed",
		"feed", title,
		"saved", imp.Saved,
		"existed", imp.Existed,
		"failed", imp.Failed,
	)
	return imp, nil
}

// Document returns the cached document stored under title.
func (s *libraryService) Document(title string) (domain.Document, error) {
	return s.store.Get(title)
}

// Documents returns all cached documents in insertion order.
func (s *libraryService) Documents() []domain.Document {
	return s.store.List()
}
