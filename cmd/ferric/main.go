package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ferric/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ferric",
	Short: "Ferric source-to-source translator",
	Long:  `Ferric translates a C-flavored dialect into Rust-flavored source`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 uses the manifest value)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the output terminal and keeps
// the global color state in sync for the renderers.
func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	var on bool
	switch mode {
	case "on", "always":
		on = true
	case "off", "never":
		on = false
	default:
		on = isTerminal(os.Stderr)
	}
	color.NoColor = !on
	return on
}
