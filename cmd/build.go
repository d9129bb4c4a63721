package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jojomanman/Pico-8-normal-map/internal/manifest"
	"github.com/jojomanman/Pico-8-normal-map/internal/pipeline"
	"github.com/jojomanman/Pico-8-normal-map/internal/profile"
	"github.com/spf13/cobra"
)

var (
	buildOutDir   string
	buildPreset   string
	buildWorkers  int
	buildPreviews bool
	buildScale    int
	buildCompress bool
)

// ManifestName is the manifest filename inside the output directory; a .zst
// suffix is appended when --compress is set.
const ManifestName = "gfx.manifest.json"

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Batch-convert a directory of maps and write a manifest",
	Long: `Scans the input directory for map images (png, jpg, jpeg, gif, bmp,
tiff, webp), converts each through the selected preset and writes
content-addressed sprite files: <key>.<res>.<hash>.gfx

A JSON manifest describing every sprite is written alongside them.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./gfx_out", "output directory")
	buildCmd.Flags().StringVarP(&buildPreset, "preset", "p", profile.DefaultName,
		fmt.Sprintf("conversion preset (%s)", strings.Join(profile.Names(), ", ")))
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().BoolVar(&buildPreviews, "previews", false, "also write a slope preview PNG per sprite")
	buildCmd.Flags().IntVar(&buildScale, "preview-scale", 8, "nearest-neighbor upscale factor for previews")
	buildCmd.Flags().BoolVar(&buildCompress, "compress", false, "write the manifest zstd-compressed (.json.zst)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	preset := profile.Get(buildPreset).Clamped()
	logVerbose("input:  %s", absInput)
	logVerbose("output: %s", absOutput)
	logVerbose("preset: %s (mode=%s res=%d gradient=%.2f alpha=%d)",
		preset.Name, preset.Mode, int(preset.Resolution),
		preset.Tuning.GradientFactor, preset.Tuning.AlphaThreshold)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:      absInput,
		OutputDir:     absOutput,
		Preset:        preset,
		Workers:       buildWorkers,
		Verbose:       verbose,
		WritePreviews: buildPreviews,
		PreviewScale:  buildScale,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, ManifestName)
	if buildCompress {
		manifestPath += ".zst"
		err = manifest.WriteJSONZstd(m, manifestPath)
	} else {
		err = manifest.WriteJSON(m, manifestPath)
	}
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(m, manifestPath, time.Since(start))
	return nil
}

func printBuildReport(m *manifest.Manifest, manifestPath string, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║              p8gfx build complete                ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Preset:       %s\n", m.Preset)
	fmt.Printf("  Sprites:      %d\n", s.TotalAssets)
	fmt.Printf("  Input size:   %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Sprite chars: %s\n", formatBytes(s.TotalSpriteChars))
	if s.TotalNibbles > 0 {
		fmt.Printf("  Void pixels:  %.1f%%\n", float64(s.VoidNibbles)/float64(s.TotalNibbles)*100)
	}
	fmt.Printf("  Time:         %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("  Manifest:     %s\n", filepath.Base(manifestPath))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
