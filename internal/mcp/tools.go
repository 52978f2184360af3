package mcp

import "github.com/mark3labs/mcp-go/mcp"

var searchPostsTool = mcp.NewTool("search_posts",
	mcp.WithDescription("Search blog posts by a case-insensitive substring of the title, excerpt, description, tags or category. Optionally restrict to one tag."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Text to look for; an empty string lists every post"),
	),
	mcp.WithString("tag",
		mcp.Description("Only return posts carrying this exact tag"),
	),
)

var listTagsTool = mcp.NewTool("list_tags",
	mcp.WithDescription("List every tag used by the blog's posts, sorted, with the number of posts per tag."),
)

var readPostTool = mcp.NewTool("read_post",
	mcp.WithDescription("Read one post: its front-matter metadata followed by the markdown body."),
	mcp.WithString("file",
		mcp.Required(),
		mcp.Description("Post file name as listed in the manifest, e.g. hello.md"),
	),
)
