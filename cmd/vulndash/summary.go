package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/open-sspm/vulndash/internal/aggregate"
	"github.com/open-sspm/vulndash/internal/config"
	"github.com/open-sspm/vulndash/internal/findings"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var summaryOpts struct {
	datasetFlags
	json bool
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the headline counters for a dataset.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		source := summaryOpts.resolveSource(cfg)
		records, err := loadDataset(cmd.Context(), cfg, source)
		if err != nil {
			return err
		}
		report, err := buildSummaryReport(source, records, summaryOpts.datasetFlags)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if summaryOpts.json || !isTerminal(out) {
			return writeSummaryJSON(out, report)
		}
		return writeSummaryText(out, report)
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryOpts.source, "source", "", "Dataset path or URL (defaults to DATA_SOURCE)")
	summaryCmd.Flags().StringSliceVar(&summaryOpts.orgs, "org", nil, "Organization to include (repeatable)")
	summaryCmd.Flags().StringSliceVar(&summaryOpts.scans, "scan", nil, "Scan type to include (repeatable)")
	summaryCmd.Flags().BoolVar(&summaryOpts.json, "json", false, "Print JSON even on a terminal")
}

type summaryReport struct {
	Source   string                  `json:"source"`
	Dataset  findings.DatasetSummary `json:"dataset"`
	Org      []string                `json:"org"`
	Scan     []string                `json:"scan"`
	Filtered int                     `json:"filtered"`
	Summary  aggregate.Summary       `json:"summary"`
}

func buildSummaryReport(source string, records []findings.Record, flags datasetFlags) (summaryReport, error) {
	state, err := flags.state()
	if err != nil {
		return summaryReport{}, err
	}
	filtered := state.Apply(records)
	return summaryReport{
		Source:   source,
		Dataset:  findings.Summarize(records),
		Org:      state.Org.Values(),
		Scan:     state.Scan.Values(),
		Filtered: len(filtered),
		Summary:  aggregate.Summarize(filtered),
	}, nil
}

func writeSummaryJSON(w io.Writer, report summaryReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeSummaryText(w io.Writer, r summaryReport) error {
	mttr := "—"
	if r.Summary.MeanMTTR.Valid {
		mttr = strconv.FormatFloat(r.Summary.MeanMTTR.Value, 'f', 1, 64) + " days"
	}
	_, err := fmt.Fprintf(w,
		"source:        %s\n"+
			"dataset:       %d issues, %d orgs, %d projects (%s to %s)\n"+
			"selection:     %d issues\n"+
			"open critical: %d\n"+
			"open high:     %d\n"+
			"fixed:         %d\n"+
			"mean MTTR:     %s\n",
		r.Source,
		r.Dataset.Issues, r.Dataset.Orgs, r.Dataset.Projects, r.Dataset.FirstMonth, r.Dataset.LastMonth,
		r.Filtered,
		r.Summary.OpenCritical,
		r.Summary.OpenHigh,
		r.Summary.Fixed,
		mttr,
	)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
