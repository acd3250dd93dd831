package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/spf13/cobra"
)

func newRunCmd(open opener) *cobra.Command {
	var (
		period string
		actor  string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a payroll run and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			result := a.PayrollService.Run(cmd.Context(), payroll.RunRequest{Actor: actor, Period: period})

			if result.Success && out != "" {
				content, err := base64.StdEncoding.DecodeString(result.FileContent)
				if err != nil {
					return fmt.Errorf("failed to decode transfer file: %w", err)
				}
				if err := os.WriteFile(out, content, 0o640); err != nil {
					return fmt.Errorf("failed to write transfer file: %w", err)
				}
				// the file is on disk, keep stdout readable
				result.FileContent = ""
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}

			if !result.Success {
				return fmt.Errorf("payroll run failed: %s", result.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "pay period in YYYY-MM format (defaults to the current month)")
	cmd.Flags().StringVar(&actor, "actor", "cli", "actor recorded in the audit log")
	cmd.Flags().StringVar(&out, "out", "", "write the transfer file to this path")
	return cmd
}
