package pipeline

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jojomanman/Pico-8-normal-map/internal/hasher"
	"github.com/jojomanman/Pico-8-normal-map/internal/manifest"
	"github.com/jojomanman/Pico-8-normal-map/internal/render"
	"github.com/jojomanman/Pico-8-normal-map/internal/sprite"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// convertResult holds the result of converting a single map image.
type convertResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// convertSource handles one map: decode, crop+resample+encode, write the
// content-addressed .gfx file and optional preview PNG.
//
// Batch runs always take the full centered square; per-image pan/zoom is an
// interactive concern and lives in the convert command.
func convertSource(src Source, cfg Config) convertResult {
	result := convertResult{key: src.Key}
	preset := cfg.Preset

	f, err := os.Open(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("open %s: %w", src.RelPath, err)
		return result
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}
	bounds := img.Bounds()

	conv, err := sprite.Convert(img, sprite.CenteredCrop(), preset.Resolution, preset.Mode, preset.Tuning)
	if err != nil {
		result.err = fmt.Errorf("convert %s: %w", src.RelPath, err)
		return result
	}

	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = fmt.Errorf("create output dir for %s: %w", src.Key, err)
			return result
		}
	}

	// Content-addressed filename: <key>.<res>.<hash8>.gfx
	data := []byte(conv.Sprite)
	contentHash := hasher.ContentHash(data, hasher.DefaultLen)
	baseName := fmt.Sprintf("%s.%d.%s", filepath.Base(src.Key), int(preset.Resolution), contentHash[:8])
	relPath := filepath.ToSlash(filepath.Join(keyDir, baseName+".gfx"))

	if err := os.WriteFile(filepath.Join(cfg.OutputDir, relPath), append(data, '\n'), 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	var previewRel string
	if cfg.WritePreviews {
		previewRel, err = writePreview(conv.Sprite, filepath.Join(keyDir, baseName+".png"), cfg)
		if err != nil {
			result.err = fmt.Errorf("preview %s: %w", src.Key, err)
			return result
		}
	}

	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Format: src.Format,
			Size:   src.Size,
		},
		Mode:           preset.Mode.String(),
		Resolution:     int(preset.Resolution),
		GradientFactor: preset.Tuning.GradientFactor,
		AlphaThreshold: preset.Tuning.AlphaThreshold,
		Sprite: manifest.SpriteInfo{
			Length: len(conv.Sprite),
			Hash:   contentHash,
			Path:   relPath,
		},
		Histogram:   [16]int(conv.Histogram),
		PreviewPath: previewRel,
	}
	return result
}

func writePreview(spriteStr, relPath string, cfg Config) (string, error) {
	res, nibbles, err := sprite.Parse(spriteStr)
	if err != nil {
		return "", err
	}
	img, err := render.Slopes(nibbles, int(res), cfg.PreviewScale)
	if err != nil {
		return "", err
	}

	out, err := os.Create(filepath.Join(cfg.OutputDir, relPath))
	if err != nil {
		return "", err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return filepath.ToSlash(relPath), nil
}
