package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ic10lsp/internal/lsp"
	"ic10lsp/internal/version"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the IC10 language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func runLSP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		// A broken project file should not keep the server from starting;
		// the editor session falls back to defaults.
		fmt.Fprintf(os.Stderr, "lsp: %v\n", err)
	}
	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics(cmd),
		Version:        version.Plain,
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
