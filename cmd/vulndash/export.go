package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/open-sspm/vulndash/internal/aggregate"
	"github.com/open-sspm/vulndash/internal/chart"
	"github.com/open-sspm/vulndash/internal/config"
	"github.com/open-sspm/vulndash/internal/dashboard"
	"github.com/open-sspm/vulndash/internal/findings"
	"github.com/open-sspm/vulndash/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const exportWorkers = 4

var exportOpts struct {
	datasetFlags
	out string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render every chart of a dataset to SVG files.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOpts.out) == "" {
			return &exitError{code: 2, err: errors.New("--out is required")}
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		source := exportOpts.resolveSource(cfg)
		records, err := loadDataset(cmd.Context(), cfg, source)
		if err != nil {
			return err
		}
		result, err := exportCharts(cmd.Context(), exportOpts.out, source, records, exportOpts.datasetFlags)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d charts (%d empty) to %s\n", result.Drawn, result.Empty, exportOpts.out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOpts.out, "out", "", "Directory to write SVG files and charts.json into")
	exportCmd.Flags().StringVar(&exportOpts.source, "source", "", "Dataset path or URL (defaults to DATA_SOURCE)")
	exportCmd.Flags().StringSliceVar(&exportOpts.orgs, "org", nil, "Organization to include (repeatable)")
	exportCmd.Flags().StringSliceVar(&exportOpts.scans, "scan", nil, "Scan type to include (repeatable)")
}

type exportResult struct {
	Drawn int
	Empty int
}

type exportManifest struct {
	Source   string            `json:"source"`
	Org      []string          `json:"org"`
	Scan     []string          `json:"scan"`
	Filtered int               `json:"filtered"`
	Summary  aggregate.Summary `json:"summary"`
	Charts   []chart.Slot      `json:"charts"`
}

// exportCharts writes <id>.svg for every chart that has data, plus charts.json
// holding every slot.
func exportCharts(ctx context.Context, dir, source string, records []findings.Record, flags datasetFlags) (exportResult, error) {
	state, err := flags.state()
	if err != nil {
		return exportResult{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return exportResult{}, fmt.Errorf("create output dir: %w", err)
	}

	dash := dashboard.New(logging.Discard())
	dash.Load(source, records)
	dash.SetState(state)
	snap := dash.Snapshot()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportWorkers)
	drawn := make([]bool, len(snap.Slots))
	for i, slot := range snap.Slots {
		if slot.IsEmpty() {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			wrote, err := writeChartFile(filepath.Join(dir, string(slot.ID)+".svg"), slot)
			drawn[i] = wrote
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return exportResult{}, err
	}

	var result exportResult
	for _, ok := range drawn {
		if ok {
			result.Drawn++
		} else {
			result.Empty++
		}
	}

	manifest := exportManifest{
		Source:   source,
		Org:      snap.State.Org.Values(),
		Scan:     snap.State.Scan.Values(),
		Filtered: snap.Filtered,
		Summary:  snap.Summary,
		Charts:   snap.Slots,
	}
	payload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return exportResult{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, "charts.json"), append(payload, '\n'), 0o644); err != nil {
		return exportResult{}, fmt.Errorf("write charts.json: %w", err)
	}
	return result, nil
}

// writeChartFile reports false without writing when the figure has nothing the
// SVG renderer can draw.
func writeChartFile(path string, slot chart.Slot) (bool, error) {
	var buf bytes.Buffer
	if err := chart.WriteSVG(&buf, slot.Title, *slot.Figure); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			return false, nil
		}
		return false, fmt.Errorf("render %s: %w", slot.ID, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
