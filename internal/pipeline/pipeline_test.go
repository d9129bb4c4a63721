package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jojomanman/Pico-8-normal-map/internal/profile"
	"github.com/jojomanman/Pico-8-normal-map/internal/sprite"
)

func TestPipelineRun(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writePNG(t, filepath.Join(inputDir, "rock.png"), 64, 48)
	writePNG(t, filepath.Join(inputDir, "tiles", "brick.png"), 32, 32)

	p := New(Config{
		InputDir:      inputDir,
		OutputDir:     outputDir,
		Preset:        profile.Get("normal-16"),
		Workers:       2,
		WritePreviews: true,
		PreviewScale:  4,
	})
	m, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Assets) != 2 {
		t.Fatalf("converted %d assets, want 2", len(m.Assets))
	}
	if m.Stats.TotalNibbles != 2*2*16*16 {
		t.Errorf("total nibbles %d, want %d", m.Stats.TotalNibbles, 2*2*16*16)
	}

	for key, a := range m.Assets {
		if a.Mode != "normal" || a.Resolution != 16 {
			t.Errorf("%s: mode/res %q/%d", key, a.Mode, a.Resolution)
		}
		if a.Sprite.Length != 527 {
			t.Errorf("%s: sprite length %d, want 527", key, a.Sprite.Length)
		}
		if len(a.Sprite.Hash) != 16 {
			t.Errorf("%s: hash %q", key, a.Sprite.Hash)
		}
		if !strings.Contains(a.Sprite.Path, a.Sprite.Hash[:8]) {
			t.Errorf("%s: path %q not content-addressed", key, a.Sprite.Path)
		}

		// The written file must parse back to a 16x16 nibble grid.
		data, err := os.ReadFile(filepath.Join(outputDir, filepath.FromSlash(a.Sprite.Path)))
		if err != nil {
			t.Fatalf("%s: %v", key, err)
		}
		res, nibbles, err := sprite.Parse(strings.TrimSpace(string(data)))
		if err != nil {
			t.Fatalf("%s: parse written sprite: %v", key, err)
		}
		if res != sprite.Res16 {
			t.Errorf("%s: written resolution %d", key, int(res))
		}
		if got := sprite.HistogramOf(nibbles); got != sprite.Histogram(a.Histogram) {
			t.Errorf("%s: manifest histogram does not match written sprite", key)
		}

		if a.PreviewPath == "" {
			t.Errorf("%s: preview missing from manifest", key)
		} else if _, err := os.Stat(filepath.Join(outputDir, filepath.FromSlash(a.PreviewPath))); err != nil {
			t.Errorf("%s: preview file: %v", key, err)
		}
	}
}

func TestPipelineDeterministicHashes(t *testing.T) {
	inputDir := t.TempDir()
	writePNG(t, filepath.Join(inputDir, "rock.png"), 40, 40)

	run := func() string {
		out := t.TempDir()
		p := New(Config{InputDir: inputDir, OutputDir: out, Preset: profile.Get("depth-32")})
		m, err := p.Run()
		if err != nil {
			t.Fatal(err)
		}
		return m.Assets["rock"].Sprite.Hash
	}

	if h1, h2 := run(), run(); h1 != h2 {
		t.Errorf("hashes differ across runs: %s vs %s", h1, h2)
	}
}

func TestPipelineEmptyDir(t *testing.T) {
	p := New(Config{InputDir: t.TempDir(), OutputDir: t.TempDir(), Preset: profile.Get("normal-16")})
	if _, err := p.Run(); err == nil {
		t.Error("want error for empty input dir")
	}
}

func TestPipelineAllFailures(t *testing.T) {
	inputDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(inputDir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(Config{InputDir: inputDir, OutputDir: t.TempDir(), Preset: profile.Get("normal-16")})
	if _, err := p.Run(); err == nil {
		t.Error("want error when every map fails to decode")
	}
}
