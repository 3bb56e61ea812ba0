package mcp

import (
	"context"
	"strings"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
	"github.com/custodia-labs/reader-bridge/internal/core/ports/driven"
	"github.com/custodia-labs/reader-bridge/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/reader-bridge/internal/core/services"
)

type fixture struct {
	server *Server
	client *mocks.MockReaderClient
	store  *mocks.MockDocumentStore
	feeds  *mocks.MockFeedParser
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := mocks.NewMockReaderClient()
	store := mocks.NewMockDocumentStore()
	feeds := &mocks.MockFeedParser{}
	library := services.NewLibraryService(services.LibraryConfig{
		Client: client,
		Store:  store,
		Feeds:  feeds,
	})
	return &fixture{
		server: NewServer(Config{Library: library}),
		client: client,
		store:  store,
		feeds:  feeds,
	}
}

func resultText(t *testing.T, res *sdk.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdk.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestAddDocumentNew(t *testing.T) {
	f := newFixture(t)
	f.client.SaveResult = &domain.SaveResult{ID: "doc-1", URL: "https://read.example/doc-1"}

	res, _, err := f.server.handleAddDocument(context.Background(), nil, addDocumentArgs{URL: "https://example.com/post"})
	require.NoError(t, err)
	assert.Equal(t, "Added document with the ID: doc-1", resultText(t, res))
}

func TestAddDocumentAlreadyExists(t *testing.T) {
	f := newFixture(t)
	f.client.SaveExisted = true
	f.client.SaveResult = &domain.SaveResult{ID: "doc-1", URL: "https://read.example/doc-1"}

	res, _, err := f.server.handleAddDocument(context.Background(), nil, addDocumentArgs{URL: "https://example.com/post"})
	require.NoError(t, err)
	assert.Equal(t, "Document already exists with the ID: doc-1", resultText(t, res))
}

func TestAddDocumentMissingURL(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.server.handleAddDocument(context.Background(), nil, addDocumentArgs{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetDocumentEmptyResult(t *testing.T) {
	f := newFixture(t)
	f.client.Pages = []*domain.ListPage{{Count: 0}}

	res, _, err := f.server.handleGetDocument(context.Background(), nil, getDocumentArgs{Location: "new"})
	require.NoError(t, err)
	assert.Equal(t, "No documents found.", resultText(t, res))
	assert.Zero(t, f.store.Len(), "empty result must not mutate the store")
}

func TestGetDocumentFormatsResults(t *testing.T) {
	f := newFixture(t)
	f.client.Pages = []*domain.ListPage{{
		Count: 2,
		Results: []domain.Document{
			{ID: "1", URL: "https://a", Title: "Alpha", Author: "Ada"},
			{ID: "2", URL: "https://b", Title: "Beta", Summary: "On B."},
		},
	}}

	res, _, err := f.server.handleGetDocument(context.Background(), nil, getDocumentArgs{Location: "new"})
	require.NoError(t, err)

	text := resultText(t, res)
	assert.True(t, strings.HasPrefix(text, "2 documents found:\n"), "got %q", text)
	assert.Contains(t, text, "Title: Alpha")
	assert.Contains(t, text, "Author: Ada")
	assert.Contains(t, text, "Title: Beta")
	assert.Contains(t, text, "Summary: On B.")
	assert.Equal(t, 2, f.store.Len())
}

func TestGetDocumentInvalidLocation(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.server.handleGetDocument(context.Background(), nil, getDocumentArgs{Location: "inbox"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.client.ListCallCount())
}

func TestAddFeed(t *testing.T) {
	f := newFixture(t)
	f.feeds.Title = "Engineering Weekly"
	f.feeds.Entries = []driven.FeedEntry{
		{Title: "One", URL: "https://blog.example/one"},
		{Title: "Two", URL: "https://blog.example/two"},
	}

	res, _, err := f.server.handleAddFeed(context.Background(), nil, addFeedArgs{FeedURL: "https://blog.example/feed.xml"})
	require.NoError(t, err)

	text := resultText(t, res)
	assert.Contains(t, text, `Imported feed "Engineering Weekly"`)
	assert.Contains(t, text, "2 added")
}

func TestReadResource(t *testing.T) {
	f := newFixture(t)
	f.store.Upsert(domain.Document{ID: "1", URL: "https://a", Title: "Alpha Doc", Summary: "About A."})

	req := &sdk.ReadResourceRequest{Params: &sdk.ReadResourceParams{URI: resourceURI("Alpha Doc")}}
	res, err := f.server.handleReadResource(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)
	assert.Contains(t, res.Contents[0].Text, `"title": "Alpha Doc"`)
}

func TestPublishResourcesPicksUpStoreWrites(t *testing.T) {
	f := newFixture(t)

	// Simulates the background refresher, which writes to the store
	// without going through a tool handler.
	f.store.Upsert(domain.Document{ID: "1", URL: "https://a", Title: "Alpha Doc", Summary: "About A."})
	assert.NotContains(t, f.server.published, "Alpha Doc")

	f.server.PublishResources()
	assert.Equal(t, "About A.", f.server.published["Alpha Doc"])
}

func TestPublishResourcesRefreshesDescription(t *testing.T) {
	f := newFixture(t)

	f.store.Upsert(domain.Document{ID: "1", URL: "https://a", Title: "Alpha Doc"})
	f.server.PublishResources()
	assert.Equal(t, "No summary available", f.server.published["Alpha Doc"])

	f.store.Upsert(domain.Document{ID: "1", URL: "https://a", Title: "Alpha Doc", Summary: "Now summarized."})
	f.server.PublishResources()
	assert.Equal(t, "Now summarized.", f.server.published["Alpha Doc"])
}

func TestReadResourceUnknownTitle(t *testing.T) {
	f := newFixture(t)

	req := &sdk.ReadResourceRequest{Params: &sdk.ReadResourceParams{URI: resourceURI("Missing")}}
	_, err := f.server.handleReadResource(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReadResourceBadScheme(t *testing.T) {
	f := newFixture(t)

	req := &sdk.ReadResourceRequest{Params: &sdk.ReadResourceParams{URI: "document://list/X"}}
	_, err := f.server.handleReadResource(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResourceURIRoundTrip(t *testing.T) {
	title := "Spaces & Slashes / Oddities"
	got, err := titleFromURI(resourceURI(title))
	require.NoError(t, err)
	assert.Equal(t, title, got)
}

func TestSummarizeNotesBrief(t *testing.T) {
	f := newFixture(t)
	f.store.Upsert(domain.Document{ID: "1", URL: "https://a", Title: "Alpha"})
	f.store.Upsert(domain.Document{ID: "2", URL: "https://b", Title: "Beta"})

	req := &sdk.GetPromptRequest{Params: &sdk.GetPromptParams{Name: "summarize-notes"}}
	res, err := f.server.handleSummarizeNotes(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, res.Messages, 1)
	assert.Equal(t, sdk.Role("user"), res.Messages[0].Role)
	text := res.Messages[0].Content.(*sdk.TextContent).Text
	assert.NotContains(t, text, "Give extensive details.")
	assert.Contains(t, text, "- Alpha:")
	assert.Contains(t, text, "- Beta:")
}

func TestSummarizeNotesDetailed(t *testing.T) {
	f := newFixture(t)
	f.store.Upsert(domain.Document{ID: "1", URL: "https://a", Title: "Alpha"})

	req := &sdk.GetPromptRequest{Params: &sdk.GetPromptParams{
		Name:      "summarize-notes",
		Arguments: map[string]string{"style": "detailed"},
	}}
	res, err := f.server.handleSummarizeNotes(context.Background(), req)
	require.NoError(t, err)

	text := res.Messages[0].Content.(*sdk.TextContent).Text
	assert.Contains(t, text, "Give extensive details.")
}
