package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/open-sspm/vulndash/internal/config"
	"github.com/open-sspm/vulndash/internal/filter"
	"github.com/open-sspm/vulndash/internal/findings"
	"github.com/open-sspm/vulndash/internal/loader"
)

// datasetFlags are shared by the one-shot commands.
type datasetFlags struct {
	source string
	orgs   []string
	scans  []string
}

func (f datasetFlags) resolveSource(cfg config.Config) string {
	if s := strings.TrimSpace(f.source); s != "" {
		return s
	}
	return cfg.DataSource
}

// state applies each --org and --scan value as one chip toggle.
func (f datasetFlags) state() (filter.State, error) {
	var st filter.State
	for _, org := range f.orgs {
		if err := st.Toggle(filter.KindOrg, org); err != nil {
			return filter.State{}, err
		}
	}
	for _, scan := range f.scans {
		if err := st.Toggle(filter.KindScan, scan); err != nil {
			return filter.State{}, err
		}
	}
	return st, nil
}

func loadDataset(ctx context.Context, cfg config.Config, source string) ([]findings.Record, error) {
	records, err := loader.New(cfg.FetchTimeout).Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}
	return records, nil
}
