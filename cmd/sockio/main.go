// File: cmd/sockio/main.go
// Author: momentics <momentics@gmail.com>
//
// sockio is a small diagnostic tool over the hioload-io runtime:
// resolve addresses, run an echo server, drive an echo client.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sockio:", err)
		os.Exit(1)
	}
}

func newApp() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sockio",
		Short:         "Diagnostics for the hioload-io socket runtime",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.AddCommand(
		newResolveCommand(),
		newEchoServerCommand(),
		newEchoClientCommand(),
	)
	return rootCmd
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
