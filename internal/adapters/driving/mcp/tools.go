package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
)

type addDocumentArgs struct {
	URL string `json:"url" jsonschema:"the URL of the document to save"`
}

type getDocumentArgs struct {
	Location     string `json:"location" jsonschema:"the document's location, one of: new, later, shortlist, archive, feed"`
	Category     string `json:"category,omitempty" jsonschema:"the document's category, one of: article, email, rss, highlight, note, pdf, epub, tweet, video"`
	UpdatedAfter string `json:"updated_after,omitempty" jsonschema:"fetch only documents updated after this RFC 3339 timestamp"`
}

type addFeedArgs struct {
	FeedURL string `json:"feed_url" jsonschema:"the URL of an RSS or Atom feed whose entries should be saved"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add-document",
		Description: "Add a new document to Readwise Reader",
	}, s.handleAddDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get-document",
		Description: "Get a list of documents from Readwise Reader",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add-feed",
		Description: "Save every entry of an RSS/Atom feed to Readwise Reader",
	}, s.handleAddFeed)
}

func (s *Server) handleAddDocument(ctx context.Context, req *mcp.CallToolRequest, args addDocumentArgs) (*mcp.CallToolResult, any, error) {
	existed, result, err := s.library.SaveURL(ctx, args.URL)
	if err != nil {
		return nil, nil, err
	}

	var text string
	if existed {
		text = fmt.Sprintf("Document already exists with the ID: %s", result.ID)
	} else {
		text = fmt.Sprintf("Added document with the ID: %s", result.ID)
	}
	s.logger.Info("add-document", "id", result.ID, "existed", existed)
	return textResult(text), nil, nil
}

func (s *Server) handleGetDocument(ctx context.Context, req *mcp.CallToolRequest, args getDocumentArgs) (*mcp.CallToolResult, any, error) {
	docs, err := s.library.FetchDocuments(ctx, args.Location, args.Category, args.UpdatedAfter)
	if err != nil {
		return nil, nil, err
	}

	if len(docs) == 0 {
		return textResult("No documents found."), nil, nil
	}

	s.PublishResources()

	var b strings.Builder
	fmt.Fprintf(&b, "%d documents found:\n", len(docs))
	for i, doc := range docs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(domain.FormatDocument(doc))
	}
	return textResult(b.String()), nil, nil
}

func (s *Server) handleAddFeed(ctx context.Context, req *mcp.CallToolRequest, args addFeedArgs) (*mcp.CallToolResult, any, error) {
	imp, err := s.library.ImportFeed(ctx, args.FeedURL)
	if err != nil {
		return nil, nil, err
	}

	text := fmt.Sprintf("Imported feed %q: %d added, %d already existed, %d failed",
		imp.FeedTitle, imp.Saved, imp.Existed, imp.Failed)
	return textResult(text), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
