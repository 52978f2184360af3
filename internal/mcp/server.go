package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/hyuniciel/inkwell/internal/post"
)

// Version is set via ldflags at build time.
var Version = "dev"

// PostReader returns the raw markdown source of a post file.
type PostReader interface {
	Post(ctx context.Context, name string) ([]byte, error)
}

// Server wraps an MCP server that exposes the blog's posts to agents.
type Server struct {
	posts post.Source
	pages PostReader
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server over the loaded posts.
func NewServer(posts post.Source, pages PostReader) *Server {
	s := &Server{
		posts: posts,
		pages: pages,
	}

	s.mcp = server.NewMCPServer(
		"inkwell",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(searchPostsTool, s.handleSearchPosts)
	s.mcp.AddTool(listTagsTool, s.handleListTags)
	s.mcp.AddTool(readPostTool, s.handleReadPost)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
