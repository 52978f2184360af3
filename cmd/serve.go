package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyuniciel/inkwell/internal/comments"
	"github.com/hyuniciel/inkwell/internal/config"
	"github.com/hyuniciel/inkwell/internal/db"
	"github.com/hyuniciel/inkwell/internal/debounce"
	"github.com/hyuniciel/inkwell/internal/prefs"
	"github.com/hyuniciel/inkwell/internal/render"
	"github.com/hyuniciel/inkwell/internal/server"
	"github.com/hyuniciel/inkwell/internal/site"
	"github.com/hyuniciel/inkwell/internal/theme"
	"github.com/hyuniciel/inkwell/internal/watch"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the blog web server",
	Long:  `Loads the manifest and serves the post list, post pages, live search and the theme API over HTTP.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	st := loadStore(ctx, lib)

	// Open database only when theme choices live in SQLite.
	var database *db.DB
	if cfg.Theme.Storage == config.StorageSQLite {
		database, err = db.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		debugf("db: opened %s", database.Path())
	}

	factory, err := prefs.NewFactory(string(cfg.Theme.Storage), database)
	if err != nil {
		return err
	}

	defaultTheme, err := theme.Parse(cfg.Theme.Default)
	if err != nil {
		return err
	}

	blog, err := site.New(st, lib, render.New(cfg.Markdown.HighlightStyle), factory, site.Options{
		Title:        cfg.Site.Title,
		Description:  cfg.Site.Description,
		DefaultTheme: defaultTheme,
		Comments:     commentsConfig(cfg.Comments),
		Debounce:     cfg.SearchDebounce(),
	})
	if err != nil {
		return fmt.Errorf("creating site: %w", err)
	}

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, st)
	blog.RegisterRoutes(srv.Router())

	if cfg.Content.Watch && cfg.Content.BaseURL == "" {
		manifestPath := filepath.Join(cfg.Content.Dir, filepath.FromSlash(cfg.Content.Manifest))
		w, err := watch.New(st, manifestPath, debounce.New(250*time.Millisecond), func(err error) {
			if err == nil {
				debugf("store: %d posts after reload", st.Count())
			}
			// A failed load empties the store; open lists show that too.
			blog.Refresh()
		})
		if err != nil {
			return fmt.Errorf("watching manifest: %w", err)
		}
		defer w.Stop()
		go w.Run(ctx)
		fmt.Fprintf(os.Stderr, "  Watching: %s\n", manifestPath)
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(os.Stderr, "  Posts: %d\n", st.Count())
	fmt.Fprintf(os.Stderr, "  Theme storage: %s\n", cfg.Theme.Storage)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func commentsConfig(c config.CommentsConfig) comments.Config {
	return comments.Config{
		Enabled:    c.Enabled,
		Repo:       c.Repo,
		RepoID:     c.RepoID,
		Category:   c.Category,
		CategoryID: c.CategoryID,
		Mapping:    c.Mapping,
		Lang:       c.Lang,
	}
}
