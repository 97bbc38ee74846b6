package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ic10lsp/internal/config"
	"ic10lsp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ic10lsp",
	Short: "Language server and checker for IC10 assembly",
	Long:  `ic10lsp analyzes IC10 assembly: a language server over stdio plus batch diagnostics for the command line.`,
	// Editors spawn the bare binary; running the server by default keeps
	// existing client configurations working.
	RunE:         runLSP,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version.Plain

	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "ic10.toml", "path to the project configuration file")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color flag against the output terminal and
// syncs the global color state.
func colorEnabled(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	var enabled bool
	switch mode {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		enabled = isTerminal(os.Stdout)
	}
	color.NoColor = !enabled
	return enabled
}

// loadConfig reads the project configuration named by --config.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.LoadFile(path)
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, _ := cmd.Flags().GetInt("max-diagnostics")
	return n
}
