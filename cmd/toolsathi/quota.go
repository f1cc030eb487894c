package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/toolsathi/toolsathi/pkg/audit"
	"github.com/toolsathi/toolsathi/pkg/config"
	"github.com/toolsathi/toolsathi/pkg/quota"
)

func newQuotaCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Manage daily generation quotas",
	}

	var toolID string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's quota usage vs limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cfg.Quota.Enabled {
				fmt.Println("Quota enforcement is disabled.")
				return nil
			}
			if !cfg.Audit.Enabled {
				fmt.Println("Quota enforcement requires audit logging.")
				return nil
			}

			auditor, err := audit.New(cfg.Audit)
			if err != nil {
				return err
			}
			defer func() { _ = auditor.Close() }()

			enforcer := quota.New(cfg.Quota.Policies, auditor)

			statuses, err := enforcer.Status(context.Background(), toolID)
			if err != nil {
				return err
			}

			if len(statuses) == 0 {
				fmt.Println("No quota policies found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TOOL\tMAX/DAY\tUSED\tREMAINING")
			for _, s := range statuses {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n",
					s.Policy.ToolID, s.Policy.MaxPerDay, s.Used, s.Remaining)
			}
			return w.Flush()
		},
	}
	statusCmd.Flags().StringVar(&toolID, "tool", "", "filter by tool id")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "toolsathi.yaml", "path to config file")
	cmd.AddCommand(statusCmd)
	return cmd
}
