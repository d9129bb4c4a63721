// Package pipeline batch-converts a directory of normal/depth maps into
// content-addressed gfx sprite files plus a manifest.
package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/jojomanman/Pico-8-normal-map/internal/manifest"
	"github.com/jojomanman/Pico-8-normal-map/internal/profile"
)

// Config holds all parameters for a batch conversion run.
type Config struct {
	InputDir      string
	OutputDir     string
	Preset        profile.Preset
	Workers       int
	Verbose       bool
	WritePreviews bool
	PreviewScale  int
}

// Pipeline orchestrates batch sprite conversion.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline. Workers ≤ 0 means one per CPU.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.PreviewScale < 1 {
		cfg.PreviewScale = 8
	}
	cfg.Preset = cfg.Preset.Clamped()
	return &Pipeline{cfg: cfg}
}

// Run converts every discovered map and returns the manifest. Individual
// file failures are reported but only fail the run when nothing converts.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	sources, err := ScanMaps(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no map images found in %s", p.cfg.InputDir)
	}
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[p8gfx] found %d maps\n", len(sources))
	}

	results := make([]convertResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[p8gfx] converting: %s\n", s.Key)
			}
			results[idx] = convertSource(s, p.cfg)
		}(i, src)
	}
	wg.Wait()

	m := manifest.New(p.cfg.Preset.Name)
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[p8gfx] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d maps failed to convert", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[p8gfx] warning: %d of %d maps had errors\n",
			len(errs), len(sources))
	}

	m.ComputeStats()
	return m, nil
}
