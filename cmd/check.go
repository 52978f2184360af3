package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyuniciel/inkwell/internal/content"
	"github.com/hyuniciel/inkwell/internal/frontmatter"
	"github.com/hyuniciel/inkwell/internal/post"
	"github.com/hyuniciel/inkwell/internal/progress"
	"github.com/hyuniciel/inkwell/internal/render"
	"github.com/hyuniciel/inkwell/internal/site"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check every post in the manifest",
	Long: `Loads the manifest, fetches each post and reports missing files, posts without
a title, tag lists that needed the comma-split fallback and markdown render errors.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// Issue severities. Errors make check exit non-zero.
const (
	severityError   = "error"
	severityWarning = "warning"
)

type checkIssue struct {
	File     string
	Severity string
	Message  string
}

type issueFunc func(file, severity, format string, args ...any)

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	st := loadStore(ctx, lib)
	if st.Count() == 0 {
		return fmt.Errorf("no posts loaded from %s", lib.ManifestName())
	}

	issues := checkPosts(ctx, st.All(), lib, render.New(cfg.Markdown.HighlightStyle), progress.NewReporter())

	errorCount := 0
	for _, is := range issues {
		if is.Severity == severityError {
			errorCount++
		}
		fmt.Fprintf(os.Stdout, "%s: %s: %s\n", is.Severity, is.File, is.Message)
	}
	fmt.Fprintf(os.Stdout, "%d error(s), %d warning(s)\n", errorCount, len(issues)-errorCount)

	if errorCount > 0 {
		return fmt.Errorf("%d post(s) failed the check", errorCount)
	}
	return nil
}

// checkPosts fetches, parses and renders each post, collecting problems.
func checkPosts(ctx context.Context, posts []post.Post, pages site.PostReader, md site.BodyRenderer, rep progress.Reporter) []checkIssue {
	var issues []checkIssue
	var add issueFunc = func(file, severity, format string, args ...any) {
		issues = append(issues, checkIssue{File: file, Severity: severity, Message: fmt.Sprintf(format, args...)})
	}

	rep.Start(len(posts))
	defer rep.Finish()

	for i, p := range posts {
		before := len(issues)
		checkPost(ctx, i, p, pages, md, add)
		name := p.File
		if name == "" {
			name = fmt.Sprintf("entry %d", i+1)
		}
		rep.Checked(name, len(issues)-before)
	}

	return issues
}

// checkPost records every problem with one manifest entry through add.
func checkPost(ctx context.Context, i int, p post.Post, pages site.PostReader, md site.BodyRenderer, add issueFunc) {
	if p.File == "" {
		add("(manifest entry)", severityError, "entry %d has no file", i+1)
		return
	}

	raw, err := pages.Post(ctx, p.File)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			add(p.File, severityError, "post file not found")
		} else {
			add(p.File, severityError, "fetching: %v", err)
		}
		return
	}

	doc := frontmatter.Parse(string(raw))
	if !doc.Meta.HasTitle() {
		add(p.File, severityWarning, "no title in front matter, shown as %q", frontmatter.DefaultTitle)
	}
	if doc.Meta.TagsFellBack() {
		add(p.File, severityWarning, "tags are not a valid list, split on commas instead")
	}
	if d := doc.Meta.Date(); d != "" {
		if _, ok := post.ParseDate(d); !ok {
			add(p.File, severityWarning, "date %q is not a recognised date", d)
		}
	}
	if _, err := md.Render(doc.Body); err != nil {
		add(p.File, severityError, "rendering markdown: %v", err)
	}
}
