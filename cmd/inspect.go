package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jojomanman/Pico-8-normal-map/internal/manifest"
	"github.com/jojomanman/Pico-8-normal-map/internal/sprite"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.gfx | manifest | out_dir>",
	Short: "Inspect a sprite string file or validate a build manifest",
	Long: `For a .gfx file: re-parses the sprite string and prints its resolution,
nibble histogram and void/flat shares.

For a manifest (or a build output directory containing one): checks the
schema version, per-asset invariants and that every referenced sprite
file exists.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, ManifestName)
		if _, err := os.Stat(path); err != nil {
			path += ".zst"
		}
	}

	if strings.HasSuffix(path, ".json") || strings.HasSuffix(path, ".json.zst") {
		return inspectManifest(path)
	}
	return inspectSprite(path)
}

func inspectSprite(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	res, nibbles, err := sprite.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}
	hist := sprite.HistogramOf(nibbles)
	total := hist.Total()

	fmt.Println()
	fmt.Printf("  Resolution:  %dx%d\n", int(res), int(res))
	fmt.Printf("  Nibbles:     %d\n", total)
	fmt.Printf("  Void share:  %.1f%%\n", float64(hist[sprite.NibbleVoid])/float64(total)*100)
	fmt.Printf("  Flat share:  %.1f%%\n", float64(hist[sprite.NibbleFlat])/float64(total)*100)
	fmt.Println()
	printHistogram(os.Stdout, hist)
	fmt.Println()
	return nil
}

func inspectManifest(path string) error {
	m, err := manifest.Read(path)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(path)
	errors := validateManifest(m, baseDir)

	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d sprites — all files present\n", m.Stats.TotalAssets)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	for key, asset := range m.Assets {
		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}

		res := sprite.Resolution(asset.Resolution)
		if !res.Valid() {
			errs = append(errs, fmt.Sprintf("asset %q: invalid resolution %d", key, asset.Resolution))
			continue
		}

		if _, err := sprite.ParseMode(asset.Mode); err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: %v", key, err))
		}

		// Two nibbles per pixel, always.
		histSum := sprite.Histogram(asset.Histogram).Total()
		if want := 2 * asset.Resolution * asset.Resolution; histSum != want {
			errs = append(errs, fmt.Sprintf("asset %q: histogram sum %d, want %d", key, histSum, want))
		}

		if wantLen := 5 + 4 + 2*asset.Resolution*asset.Resolution + 6; asset.Sprite.Length != wantLen {
			errs = append(errs, fmt.Sprintf("asset %q: sprite length %d, want %d", key, asset.Sprite.Length, wantLen))
		}

		if asset.Sprite.Path == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing sprite path", key))
		} else if _, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(asset.Sprite.Path))); err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: sprite file missing: %s", key, asset.Sprite.Path))
		}

		if asset.PreviewPath != "" {
			if _, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(asset.PreviewPath))); err != nil {
				errs = append(errs, fmt.Sprintf("asset %q: preview file missing: %s", key, asset.PreviewPath))
			}
		}
	}
	return errs
}
