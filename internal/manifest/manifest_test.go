package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func sampleManifest() *Manifest {
	m := New("normal-16")
	hist := [16]int{}
	hist[0] = 12
	hist[8] = 500
	m.Assets["maps/rock"] = Asset{
		Original: OriginalInfo{
			Width: 256, Height: 256, Format: "png", Size: 40000,
		},
		Mode:           "normal",
		Resolution:     16,
		GradientFactor: 1.0,
		AlphaThreshold: 10,
		Sprite: SpriteInfo{
			Length: 527,
			Hash:   "abcd1234abcd1234",
			Path:   "maps/rock.16.abcd1234.gfx",
		},
		Histogram: hist,
	}
	return m
}

func TestManifestRoundtrip(t *testing.T) {
	m := sampleManifest()

	dir := t.TempDir()
	path := filepath.Join(dir, "gfx.manifest.json")
	if err := WriteJSON(m, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	m2, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if m2.Version != SupportedVersion {
		t.Errorf("version: got %d, want %d", m2.Version, SupportedVersion)
	}
	if m2.Preset != "normal-16" {
		t.Errorf("preset: got %q", m2.Preset)
	}

	a, ok := m2.Assets["maps/rock"]
	if !ok {
		t.Fatal("asset maps/rock missing")
	}
	if a.Sprite.Hash != "abcd1234abcd1234" {
		t.Errorf("hash: got %q", a.Sprite.Hash)
	}
	if a.Histogram[8] != 500 {
		t.Errorf("histogram[8]: got %d", a.Histogram[8])
	}
	if a.Mode != "normal" || a.Resolution != 16 {
		t.Errorf("mode/resolution: got %q/%d", a.Mode, a.Resolution)
	}
}

func TestManifestZstdRoundtrip(t *testing.T) {
	m := sampleManifest()

	dir := t.TempDir()
	path := filepath.Join(dir, "gfx.manifest.json.zst")
	if err := WriteJSONZstd(m, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Compressed output must not be plain JSON on disk.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) > 0 && raw[0] == '{' {
		t.Error("zstd manifest written uncompressed")
	}

	m2, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if m2.Stats.TotalAssets != 1 {
		t.Errorf("total_assets: got %d", m2.Stats.TotalAssets)
	}
	if _, ok := m2.Assets["maps/rock"]; !ok {
		t.Error("asset missing after compressed roundtrip")
	}
}

func TestComputeStats(t *testing.T) {
	m := sampleManifest()
	m.ComputeStats()

	if m.Stats.TotalAssets != 1 {
		t.Errorf("total_assets: got %d", m.Stats.TotalAssets)
	}
	if m.Stats.TotalSpriteChars != 527 {
		t.Errorf("total_sprite_chars: got %d", m.Stats.TotalSpriteChars)
	}
	if m.Stats.TotalNibbles != 512 {
		t.Errorf("total_nibbles: got %d", m.Stats.TotalNibbles)
	}
	if m.Stats.VoidNibbles != 12 {
		t.Errorf("void_nibbles: got %d", m.Stats.VoidNibbles)
	}
}

func TestManifestIgnoresUnknownFields(t *testing.T) {
	// Simulate a future manifest with extra fields.
	raw := `{
		"version": 1,
		"generated_at": "2026-01-01T00:00:00Z",
		"preset": "normal-32",
		"base_path": "./",
		"future_field": "should be ignored",
		"assets": {},
		"stats": { "total_assets": 0, "new_stat": 42 }
	}`

	var m Manifest
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if m.Version != 1 || m.Preset != "normal-32" {
		t.Errorf("parsed %d/%q", m.Version, m.Preset)
	}
}
