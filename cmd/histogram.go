package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jojomanman/Pico-8-normal-map/internal/sprite"
)

const histogramBarWidth = 40

// printHistogram renders the 16-bucket nibble histogram as a bar chart.
// Bucket 0 is void, 8 is flat; the rest are slope strengths.
func printHistogram(w io.Writer, h sprite.Histogram) {
	maxCount := 0
	for _, c := range h {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return
	}

	total := h.Total()
	for v, c := range h {
		bar := strings.Repeat("█", c*histogramBarWidth/maxCount)
		tag := "  "
		switch v {
		case sprite.NibbleVoid:
			tag = "∅ "
		case sprite.NibbleFlat:
			tag = "= "
		}
		fmt.Fprintf(w, "  %x %s%-*s %6d  %5.1f%%\n",
			v, tag, histogramBarWidth, bar, c, float64(c)/float64(total)*100)
	}
}
