package sprite

import (
	"fmt"
	"strings"
)

// Parse is the inverse of Encode: it validates the frame markers and the
// resolution header, then decodes the stream into one nibble value per hex
// digit (row-major, Y slope before X slope within each pixel).
func Parse(s string) (Resolution, []byte, error) {
	body, ok := strings.CutPrefix(s, framePrefix)
	if !ok {
		return 0, nil, fmt.Errorf("%w: missing %q prefix", ErrMalformedSprite, framePrefix)
	}
	body, ok = strings.CutSuffix(body, frameSuffix)
	if !ok {
		return 0, nil, fmt.Errorf("%w: missing %q suffix", ErrMalformedSprite, frameSuffix)
	}
	if len(body) < headerLen {
		return 0, nil, fmt.Errorf("%w: body shorter than header", ErrMalformedSprite)
	}

	header := body[:headerLen]
	var res Resolution
	for _, r := range Resolutions() {
		if r.Header() == header {
			res = r
			break
		}
	}
	if res == 0 {
		return 0, nil, fmt.Errorf("%w: unknown header %q", ErrMalformedSprite, header)
	}

	stream := body[headerLen:]
	if want := 2 * int(res) * int(res); len(stream) != want {
		return 0, nil, fmt.Errorf("%w: %d nibble digits, want %d for %dx%d",
			ErrMalformedSprite, len(stream), want, int(res), int(res))
	}

	nibbles := make([]byte, len(stream))
	for i := 0; i < len(stream); i++ {
		v := strings.IndexByte(hexDigits, stream[i])
		if v < 0 {
			return 0, nil, fmt.Errorf("%w: non-hex digit %q at offset %d", ErrMalformedSprite, stream[i], i)
		}
		nibbles[i] = byte(v)
	}
	return res, nibbles, nil
}

// HistogramOf recounts a decoded nibble stream. For a stream produced by
// Encode this reproduces the histogram Encode returned.
func HistogramOf(nibbles []byte) Histogram {
	var h Histogram
	for _, n := range nibbles {
		h[n]++
	}
	return h
}
