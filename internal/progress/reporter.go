// Package progress reports how far `inkwell check` has got and how many
// posts needed attention.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives one call per checked post.
type Reporter interface {
	Start(total int)
	// Checked records that file was checked and produced issues problems.
	Checked(file string, issues int)
	Finish()
}

// Tally counts checked posts and the ones with issues.
type Tally struct {
	Total   int
	Checked int
	Flagged int
	Issues  int
}

func (t *Tally) add(issues int) {
	t.Checked++
	if issues > 0 {
		t.Flagged++
		t.Issues += issues
	}
}

// Summary is the closing line printed by every reporter.
func (t Tally) Summary() string {
	if t.Flagged == 0 {
		return fmt.Sprintf("Checked %d/%d posts, all clean", t.Checked, t.Total)
	}
	return fmt.Sprintf("Checked %d/%d posts, %d with %d issue(s)", t.Checked, t.Total, t.Flagged, t.Issues)
}

// NewReporter returns a line reporter in CI and a progress bar otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{Out: os.Stderr}
	}
	return &BarReporter{Out: os.Stderr}
}

// BarReporter shows a progress bar whose description names the post being
// checked and the running issue count.
type BarReporter struct {
	Out   io.Writer
	bar   *progressbar.ProgressBar
	tally Tally
}

func (r *BarReporter) Start(total int) {
	r.tally = Tally{Total: total}
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetDescription("Checking posts"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Checked(file string, issues int) {
	r.tally.add(issues)
	if r.bar == nil {
		return
	}
	r.bar.Describe(fmt.Sprintf("%s (%d flagged)", file, r.tally.Flagged))
	_ = r.bar.Add(1)
}

func (r *BarReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	fmt.Fprintln(r.Out, r.tally.Summary())
}

// Tally returns the counts so far.
func (r *BarReporter) Tally() Tally { return r.tally }

// LineReporter prints one line per post, suitable for CI logs. Clean posts
// are marked ok.
type LineReporter struct {
	Out   io.Writer
	tally Tally
}

func (r *LineReporter) Start(total int) {
	r.tally = Tally{Total: total}
	fmt.Fprintf(r.Out, "Checking %d posts\n", total)
}

func (r *LineReporter) Checked(file string, issues int) {
	r.tally.add(issues)
	status := "ok"
	if issues > 0 {
		status = fmt.Sprintf("%d issue(s)", issues)
	}
	fmt.Fprintf(r.Out, "[%d/%d] %s: %s\n", r.tally.Checked, r.tally.Total, file, status)
}

func (r *LineReporter) Finish() {
	fmt.Fprintln(r.Out, r.tally.Summary())
}

// Tally returns the counts so far.
func (r *LineReporter) Tally() Tally { return r.tally }
