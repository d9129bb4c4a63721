package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/jojomanman/Pico-8-normal-map/internal/profile"
	"github.com/jojomanman/Pico-8-normal-map/internal/render"
	"github.com/jojomanman/Pico-8-normal-map/internal/sprite"
	"github.com/spf13/cobra"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	convertMode      string
	convertRes       int
	convertZoom      float64
	convertPanX      float64
	convertPanY      float64
	convertGradient  float64
	convertAlpha     int
	convertOut       string
	convertPreview   string
	convertScale     int
	convertHistogram bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <image>",
	Short: "Convert a single normal or depth map to a sprite string",
	Long: `Decodes one image (png, jpg, gif, bmp, tiff, webp), crops the selected
square region, resamples it to the target resolution and prints the
resulting [gfx] sprite string to stdout (or writes it with --out).

Pan values position the crop square inside the image: 0 is flush
left/top, 1 flush right/bottom, 0.5 centered.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertMode, "mode", "m", "normal", "input mode: normal or depth")
	convertCmd.Flags().IntVarP(&convertRes, "res", "r", 16, "sprite resolution: 16, 32 or 64")
	convertCmd.Flags().Float64Var(&convertZoom, "zoom", 1.0, "crop square size relative to the largest fitting square (0,1]")
	convertCmd.Flags().Float64Var(&convertPanX, "pan-x", 0.5, "horizontal crop position [0,1]")
	convertCmd.Flags().Float64Var(&convertPanY, "pan-y", 0.5, "vertical crop position [0,1]")
	convertCmd.Flags().Float64VarP(&convertGradient, "gradient", "g", 1.0, "slope amplification factor (0.1-5.0)")
	convertCmd.Flags().IntVarP(&convertAlpha, "alpha-threshold", "a", 10, "pixels below this alpha become void (0-255)")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "write the sprite string to this file instead of stdout")
	convertCmd.Flags().StringVar(&convertPreview, "preview", "", "write a slope preview PNG to this path")
	convertCmd.Flags().IntVar(&convertScale, "preview-scale", 8, "nearest-neighbor upscale factor for the preview")
	convertCmd.Flags().BoolVar(&convertHistogram, "histogram", false, "print the nibble histogram to stderr")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	mode, err := sprite.ParseMode(convertMode)
	if err != nil {
		return err
	}
	res, err := sprite.ParseResolution(convertRes)
	if err != nil {
		return err
	}
	crop := sprite.CropSpec{Zoom: convertZoom, PanX: convertPanX, PanY: convertPanY}
	tuning := profile.ClampTuning(sprite.Tuning{
		GradientFactor: convertGradient,
		AlphaThreshold: convertAlpha,
	})

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}
	b := img.Bounds()
	logVerbose("source: %s %dx%d (%s)", args[0], b.Dx(), b.Dy(), format)

	conv, err := sprite.Convert(img, crop, res, mode, tuning)
	if err != nil {
		return err
	}
	logVerbose("crop region: %v, mode=%s, res=%d", conv.Region, mode, int(res))

	if convertOut != "" {
		if err := os.WriteFile(convertOut, []byte(conv.Sprite+"\n"), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", convertOut, err)
		}
		fmt.Printf("wrote %s (%d chars)\n", convertOut, len(conv.Sprite))
	} else {
		fmt.Println(conv.Sprite)
	}

	if convertPreview != "" {
		if err := writeSlopePreview(conv.Sprite, convertPreview, convertScale); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		logVerbose("preview: %s", convertPreview)
	}

	// Histogram goes to stderr so stdout stays pipeable.
	if convertHistogram {
		printHistogram(os.Stderr, conv.Histogram)
	}
	return nil
}

func writeSlopePreview(spriteStr, path string, scale int) error {
	res, nibbles, err := sprite.Parse(spriteStr)
	if err != nil {
		return err
	}
	img, err := render.Slopes(nibbles, int(res), scale)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
