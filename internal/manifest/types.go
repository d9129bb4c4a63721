package manifest

// Manifest is the top-level output of a batch conversion run.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Preset      string           `json:"preset"`
	BasePath    string           `json:"base_path"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// Asset describes one converted source image.
type Asset struct {
	Original       OriginalInfo `json:"original"`
	Mode           string       `json:"mode"`       // "normal" or "depth"
	Resolution     int          `json:"resolution"` // grid side: 16, 32 or 64
	GradientFactor float64      `json:"gradient_factor"`
	AlphaThreshold int          `json:"alpha_threshold"`
	Sprite         SpriteInfo   `json:"sprite"`
	Histogram      [16]int      `json:"histogram"` // nibble value counts, sum = 2·resolution²
	PreviewPath    string       `json:"preview_path,omitempty"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// SpriteInfo points at the generated sprite string file.
type SpriteInfo struct {
	Length int    `json:"length"` // sprite string length in characters
	Hash   string `json:"hash"`   // xxhash64 of the sprite string, 16 hex chars
	Path   string `json:"path"`   // relative to base_path
}

// Stats aggregates conversion metrics.
type Stats struct {
	TotalAssets      int   `json:"total_assets"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalSpriteChars int64 `json:"total_sprite_chars"`
	TotalNibbles     int64 `json:"total_nibbles"`
	VoidNibbles      int64 `json:"void_nibbles"`
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1
