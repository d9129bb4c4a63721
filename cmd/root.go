package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "p8gfx",
	Short: "Convert normal and depth maps into Pico-8 gfx sprite strings",
	Long: `p8gfx — turns normal maps and height/depth maps into the bracketed
4-bit-per-pixel sprite strings a Pico-8 cart can paste straight into its
gfx section.

Each pixel becomes a Y-slope and an X-slope nibble; supported sprite
resolutions are 16, 32 and 64 pixels per side.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"p8gfx %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[p8gfx] "+format+"\n", args...)
	}
}
