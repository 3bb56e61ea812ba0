package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-notes",
		Description: "Summarize the currently cached documents",
		Arguments: []*mcp.PromptArgument{{
			Name:        "style",
			Description: "The level of detail: brief (default) or detailed",
		}},
	}, s.handleSummarizeNotes)
}

func (s *Server) handleSummarizeNotes(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	style := req.Params.Arguments["style"]
	if style == "" {
		style = "brief"
	}
	detail := ""
	if style == "detailed" {
		detail = " Give extensive details."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the current notes to summarize:%s\n\n", detail)
	for _, doc := range s.library.Documents() {
		fmt.Fprintf(&b, "- %s: %s\n", doc.Title, domain.FormatDocument(doc))
	}

	return &mcp.GetPromptResult{
		Description: "Summarize the current notes",
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: b.String()},
		}},
	}, nil
}
