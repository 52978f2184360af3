package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hyuniciel/inkwell/internal/content"
	"github.com/hyuniciel/inkwell/internal/frontmatter"
	"github.com/hyuniciel/inkwell/internal/listing"
	"github.com/hyuniciel/inkwell/internal/post"
)

func (s *Server) handleSearchPosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	view := listing.View{
		ActiveTag: request.GetString("tag", ""),
		Query:     query,
	}
	results := view.Visible(s.posts.All())
	if len(results) == 0 {
		return mcp.NewToolResultText("No posts found."), nil
	}

	return mcp.NewToolResultText(formatPosts(results)), nil
}

func (s *Server) handleListTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all := s.posts.All()
	tags := listing.TagSet(all)
	if len(tags) == 0 {
		return mcp.NewToolResultText("No tags found."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d tag(s):\n", len(tags))
	for _, t := range tags {
		n := len(listing.Filter(all, func(p post.Post) bool { return p.HasTag(t) }))
		fmt.Fprintf(&sb, "- %s (%d)\n", t, n)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleReadPost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: file"), nil
	}

	raw, err := s.pages.Post(ctx, file)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("No post found for %q.", file)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to read post: %v", err)), nil
	}

	doc := frontmatter.Parse(string(raw))
	meta := doc.Meta

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", meta.Title())
	if d := meta.Date(); d != "" {
		fmt.Fprintf(&sb, "Date: %s\n", post.FormatDate(d))
	}
	if c := meta.Category(); c != "" {
		fmt.Fprintf(&sb, "Category: %s\n", c)
	}
	if tags := meta.Tags(); len(tags) > 0 {
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(tags, ", "))
	}
	if d := meta.Description(); d != "" {
		fmt.Fprintf(&sb, "Description: %s\n", d)
	}
	sb.WriteString("\n")
	sb.WriteString(doc.Body)

	return mcp.NewToolResultText(sb.String()), nil
}

// formatPosts lists post summaries in a compact form for agents.
func formatPosts(posts []post.Post) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d post(s):\n", len(posts))

	for i, p := range posts {
		fmt.Fprintf(&sb, "\n--- Post %d ---\n", i+1)
		fmt.Fprintf(&sb, "File: %s\n", p.File)
		fmt.Fprintf(&sb, "Title: %s\n", p.Title)
		if p.Date != "" {
			fmt.Fprintf(&sb, "Date: %s\n", post.FormatDate(p.Date))
		}
		if p.Category != "" {
			fmt.Fprintf(&sb, "Category: %s\n", p.Category)
		}
		if len(p.Tags) > 0 {
			fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(p.Tags, ", "))
		}
		if p.Excerpt != "" {
			sb.WriteString("\n")
			sb.WriteString(p.Excerpt)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
