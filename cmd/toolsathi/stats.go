package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/toolsathi/toolsathi/pkg/audit"
	"github.com/toolsathi/toolsathi/pkg/config"
	"github.com/toolsathi/toolsathi/pkg/ledger"
	"github.com/toolsathi/toolsathi/pkg/registry"
)

func newStatsCmd() *cobra.Command {
	var (
		configPath string
		toolID     string
		showAudit  bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-tool usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			ctx := context.Background()

			// Per-day generation stats from the audit log
			if showAudit {
				if !cfg.Audit.Enabled {
					fmt.Println("Audit logging is disabled.")
					return nil
				}
				auditor, err := audit.New(cfg.Audit)
				if err != nil {
					return err
				}
				defer func() { _ = auditor.Close() }()

				stats, err := auditor.Stats(ctx)
				if err != nil {
					return err
				}
				if len(stats) == 0 {
					fmt.Println("No generation data found.")
					return nil
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "DAY\tTOOL\tGENERATIONS")
				for _, s := range stats {
					fmt.Fprintf(w, "%s\t%s\t%d\n", s.Day, s.ToolID, s.Count)
				}
				return w.Flush()
			}

			l, err := ledger.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = l.Close() }()

			records, err := l.List(ctx)
			if err != nil {
				return err
			}

			if toolID != "" {
				filtered := records[:0]
				for _, r := range records {
					if r.ToolID == toolID {
						filtered = append(filtered, r)
					}
				}
				records = filtered
			}

			if len(records) == 0 {
				fmt.Println("No usage data found.")
				return nil
			}

			sort.Slice(records, func(i, j int) bool {
				return records[i].UsageCount > records[j].UsageCount
			})

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TOOL\tNAME\tUSES")
			var total int64
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%d\n", r.ToolID, registry.Humanize(r.ToolID), r.UsageCount)
				total += r.UsageCount
			}
			fmt.Fprintf(w, "TOTAL\t\t%d\n", total)
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "toolsathi.yaml", "path to config file")
	cmd.Flags().StringVar(&toolID, "tool", "", "filter by tool id")
	cmd.Flags().BoolVar(&showAudit, "audit", false, "show per-day generation stats instead")
	return cmd
}
