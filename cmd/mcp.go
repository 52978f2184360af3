package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/hyuniciel/inkwell/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools to search, list tags and read the blog's posts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}
		st := loadStore(context.Background(), lib)

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "inkwell MCP server started on stdio (posts=%d)\n", st.Count())

		srv := mcpserver.NewServer(st, lib)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
