package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zjrosen/espalier/internal/config"
	"github.com/zjrosen/espalier/internal/flags"
	"github.com/zjrosen/espalier/internal/presentation"
	"github.com/zjrosen/espalier/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reassemble on fragment changes and print what moved",
	Long: `Watch the fragments directory in the foreground. Every change
reassembles the menu and prints a line diff of the traversal order against
the previous assembly, which makes it easy to see where a hint actually
placed an item while editing fragments.

Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	store, closeStore, err := openStore(cfg, newFlags(cfg).Enabled(flags.FlagOrderFreeze))
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()
	seedStore(cfg, store)

	svc := newService(cfg, store, nil, false)
	defer svc.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	snap, err := svc.Assemble(ctx)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
	}
	prev := presentation.TreeLines(presentation.FromSnapshot(snap))
	for _, line := range prev {
		fmt.Fprintln(out, line)
	}

	dir := cfg.ResolvedFragmentsDir()
	w, err := watcher.New(watcher.Config{Dir: dir, DebounceDur: cfg.Debounce()})
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	changes, err := w.Start()
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	defer func() { _ = w.Stop() }()

	fmt.Fprintf(out, "\nwatching %s\n", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			snap, err := svc.Assemble(ctx)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
			}
			next := presentation.TreeLines(presentation.FromSnapshot(snap))

			fmt.Fprintf(out, "\n%s reassembled: %d actions, %d diagnostics\n",
				time.Now().Format("15:04:05"), snap.Actions(), len(snap.Diagnostics))
			if slices.Equal(prev, next) {
				fmt.Fprintln(out, "  (no ordering changes)")
			} else {
				for _, line := range diffLines(prev, next) {
					fmt.Fprintln(out, line)
				}
			}
			prev = next
		}
	}
}

// diffLines renders a line diff between two traversal orders, +/- for
// moved or changed entries. Long unchanged runs collapse to their first
// and last line so a one-item move stays a handful of lines.
func diffLines(before, after []string) []string {
	dmp := diffmatchpatch.New()
	src, dst, lineArr := dmp.DiffLinesToChars(
		strings.Join(before, "\n")+"\n",
		strings.Join(after, "\n")+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lineArr)

	var out []string
	for _, d := range diffs {
		lines := strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n")
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				out = append(out, "+ "+l)
			}
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				out = append(out, "- "+l)
			}
		default:
			if n := len(lines); n > 3 {
				out = append(out,
					"  "+lines[0],
					fmt.Sprintf("  … %d unchanged", n-2),
					"  "+lines[n-1])
			} else {
				for _, l := range lines {
					out = append(out, "  "+l)
				}
			}
		}
	}
	return out
}
