// Command payrun drives payroll runs from the shell or an external scheduler.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/payroll-engine/internal/app"
	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/spf13/cobra"
)

// opener builds the application for a command. Tests swap it for fakes.
type opener func() (*app.App, error)

func openApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	return app.New(cfg)
}

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "payrun",
		Short:         "Run and inspect payroll",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRunCmd(open),
		newConfigCmd(open),
		newTokenCmd(open),
	)
	return root
}

func main() {
	if err := newRootCmd(openApp).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
