package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"globelabels/pkg/config"
	"globelabels/pkg/globe"
	"globelabels/pkg/probe"
)

// check loads everything run would, performs one pass and prints a summary.
func check(w io.Writer, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts := globe.OptionsFromConfig(cfg)
	results := probe.Run(context.Background(), probe.ForSources(opts.Sources))
	for _, r := range results {
		status := "ok"
		if r.Error != nil {
			status = "FAIL: " + r.Error.Error()
		}
		fmt.Fprintf(w, "%-24s %s\n", r.Probe.Name, status)
	}
	if err := probe.AnalyzeResults(results); err != nil {
		return err
	}

	ctrl := globe.NewController(opts)
	stats, err := ctrl.Reload()
	if err != nil {
		return err
	}

	st := ctrl.State()
	fmt.Fprintf(w, "labels: %d loaded, %d skipped\n", stats.Added, stats.Skipped)

	reasons := make([]string, 0, len(stats.Reasons))
	for r := range stats.Reasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Fprintf(w, "  skipped %d: %s\n", stats.Reasons[r], r)
	}

	fmt.Fprintf(w, "visible: %d, suppressed: %d, dependent: %d, offsets: %d\n",
		len(st.Visible), st.Suppressed, len(st.Dependent), len(st.Offsets))
	return nil
}
