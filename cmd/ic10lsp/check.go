package main

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ic10lsp/internal/diagfmt"
	"ic10lsp/internal/driver"
	"ic10lsp/internal/ui"
)

var (
	checkFormat     string
	checkJobs       int
	checkNoCache    bool
	checkClearCache bool
	checkUI         string
	checkNoNotes    bool
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "number of parallel workers (0 = all CPUs)")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "skip the on-disk result cache")
	checkCmd.Flags().BoolVar(&checkClearCache, "clear-cache", false, "drop the on-disk result cache before checking")
	checkCmd.Flags().StringVar(&checkUI, "ui", "auto", "interactive progress display (auto|on|off)")
	checkCmd.Flags().BoolVar(&checkNoNotes, "no-notes", false, "suppress secondary note locations")
}

var checkCmd = &cobra.Command{
	Use:          "check [files or directories]",
	Short:        "Analyze .ic10 files and report diagnostics",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	switch checkFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", checkFormat)
	}
	colored := colorEnabled(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !checkNoCache || checkClearCache {
		cache, err = driver.OpenDiskCache("ic10lsp")
		if err != nil {
			fmt.Fprintf(os.Stderr, "check: disk cache unavailable: %v\n", err)
			cache = nil
		}
	}
	if checkClearCache && cache != nil {
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		cache = nil
		if !checkNoCache {
			if cache, err = driver.OpenDiskCache("ic10lsp"); err != nil {
				cache = nil
			}
		}
	}
	if checkNoCache {
		cache = nil
	}

	opts := driver.Options{
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics(cmd),
		Jobs:           checkJobs,
		Cache:          cache,
	}

	results, err := runCheckDriver(cmd, args, opts)
	if err != nil {
		return err
	}

	failed := 0
	if checkFormat == "json" {
		if err := printCheckJSON(cmd, results, &failed); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			diagfmt.Pretty(cmd.OutOrStdout(), res.Path, res.Lines, res.Bag, diagfmt.PrettyOpts{
				Color:     colored,
				Context:   true,
				ShowNotes: !checkNoNotes,
			})
			if res.Bag.HasErrors() {
				failed++
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("errors in %d of %d files", failed, len(results))
	}
	return nil
}

// runCheckDriver runs the batch check, with an interactive progress display
// when the terminal allows it.
func runCheckDriver(cmd *cobra.Command, args []string, opts driver.Options) ([]driver.Result, error) {
	interactive := false
	switch checkUI {
	case "on":
		interactive = true
	case "auto":
		interactive = checkFormat == "pretty" && isTerminal(os.Stdout)
	}
	if !interactive {
		return driver.Check(cmd.Context(), args, opts)
	}

	files, err := driver.ListFiles(args)
	if err != nil {
		return nil, err
	}
	// The buffer holds one event per file, so workers never block on a
	// display that stopped reading.
	events := make(chan driver.Event, len(files))
	opts.Progress = func(ev driver.Event) { events <- ev }

	var (
		results  []driver.Result
		checkErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		results, checkErr = driver.Check(cmd.Context(), args, opts)
		close(events)
	}()

	model := ui.NewProgressModel("checking", files, events)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		// The check itself may still finish fine without the display.
		fmt.Fprintf(os.Stderr, "check: progress display failed: %v\n", err)
	}
	<-done
	return results, checkErr
}

type checkFileJSON struct {
	Path string `json:"path"`
	diagfmt.DiagnosticsOutput
}

type checkOutputJSON struct {
	Files  []checkFileJSON `json:"files"`
	Failed int             `json:"failed"`
}

func printCheckJSON(cmd *cobra.Command, results []driver.Result, failed *int) error {
	out := checkOutputJSON{Files: make([]checkFileJSON, 0, len(results))}
	for _, res := range results {
		out.Files = append(out.Files, checkFileJSON{
			Path: res.Path,
			DiagnosticsOutput: diagfmt.BuildDiagnosticsOutput(res.Path, res.Bag, diagfmt.JSONOpts{
				IncludeNotes: !checkNoNotes,
			}),
		})
		if res.Bag.HasErrors() {
			*failed++
		}
	}
	out.Failed = *failed
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
