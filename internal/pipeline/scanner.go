package pipeline

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Source is a discovered map image awaiting conversion.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Key is the asset key (relpath without extension, forward slashes).
	Key string
	// Format is the normalized source format name.
	Format string
	// Size is the file size in bytes.
	Size int64
}

// mapExtensions lists the input formats the converter can decode.
var mapExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".webp": true,
}

// ScanMaps walks the input directory and returns every decodable image,
// skipping hidden directories.
func ScanMaps(inputDir string) ([]Source, error) {
	var sources []Source

	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !mapExtensions[ext] {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Key:     filepath.ToSlash(strings.TrimSuffix(relPath, ext)),
			Format:  normalizeFormat(ext),
			Size:    info.Size(),
		})
		return nil
	})

	return sources, err
}

func normalizeFormat(ext string) string {
	switch f := strings.TrimPrefix(ext, "."); f {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	default:
		return f
	}
}
