package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
)

const resourcePrefix = "readwise://list/"

// PublishResources syncs the resource list with the document store:
// new titles get a resource, titles whose summary changed get theirs
// re-registered with the fresh description. The SDK notifies connected
// clients that the resource list changed. The background refresher
// calls this after each successful fetch; the get-document tool calls
// it after its own.
func (s *Server) PublishResources() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.library.Documents() {
		description := doc.Summary
		if description == "" {
			description = "No summary available"
		}
		if prev, ok := s.published[doc.Title]; ok && prev == description {
			continue
		}
		s.published[doc.Title] = description

		s.server.AddResource(&mcp.Resource{
			URI:         resourceURI(doc.Title),
			Name:        "Document: " + doc.Title,
			Description: description,
			MIMEType:    "application/json",
		}, s.handleReadResource)
	}
}

// handleReadResource resolves the document by title at read time, so the
// content always reflects the latest fetched version.
func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	title, err := titleFromURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	doc, err := s.library.Document(title)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func resourceURI(title string) string {
	return resourcePrefix + url.PathEscape(title)
}

func titleFromURI(uri string) (string, error) {
	raw, ok := strings.CutPrefix(uri, resourcePrefix)
	if !ok {
		return "", fmt.Errorf("%w: unsupported resource URI %q", domain.ErrInvalidInput, uri)
	}
	title, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: malformed resource URI %q", domain.ErrInvalidInput, uri)
	}
	return title, nil
}
