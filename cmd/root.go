package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hyuniciel/inkwell/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Serve a markdown blog with tag filtering, live search and comments",
	Long: `Inkwell serves a personal blog from a posts.json manifest and a directory
of markdown pages. It renders the post list with tag filtering and live
search, renders posts with syntax highlighting and a giscus comment
widget, and remembers each visitor's light or dark theme.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is fine.
		_ = godotenv.Load()
		log.SetOutput(os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// debugf logs only with --verbose.
func debugf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}
