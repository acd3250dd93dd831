package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/yamlconfig"
	"github.com/spf13/cobra"
)

func newConfigCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or import the statutory configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configuration in force",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			cfg, err := a.PayrollService.GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Store a YAML configuration as a new database version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			cfg, err := yamlconfig.Parse(b)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%w: %v", payroll.ErrConfigInvalid, err)
			}

			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			created, err := a.ConfigRepo.Create(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported payroll config %s effective %s\n",
				created.ID, created.EffectiveFrom.Format("2006-01-02"))
			return nil
		},
	})

	return cmd
}
