package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// DefaultLen is the hex length used for content-addressed sprite filenames:
// 16 hex chars = the full 64-bit hash, collision-safe for any realistic
// sprite-sheet count.
const DefaultLen = 16

// ContentHash returns the xxHash64 of data as lowercase hex, truncated to
// hexLen characters (0 or out-of-range keeps the full 16).
func ContentHash(data []byte, hexLen int) string {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], xxhash.Sum64(data))
	full := hex.EncodeToString(raw[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
