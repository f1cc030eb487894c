package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toolsathi/toolsathi/pkg/audit"
	cachepkg "github.com/toolsathi/toolsathi/pkg/cache/sqlite"
	"github.com/toolsathi/toolsathi/pkg/config"
	"github.com/toolsathi/toolsathi/pkg/ledger"
	"github.com/toolsathi/toolsathi/pkg/mcp"
	"github.com/toolsathi/toolsathi/pkg/quota"
)

func newMCPCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start ToolSathi as an MCP server on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			l, err := ledger.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("init ledger: %w", err)
			}
			defer func() { _ = l.Close() }()

			var cache mcp.CacheStatter
			if cfg.Cache.Enabled {
				c, err := cachepkg.New(cfg.DBPath, cfg.Cache.TTL)
				if err != nil {
					return fmt.Errorf("init cache: %w", err)
				}
				defer func() { _ = c.Close() }()
				cache = c
			}

			var auditor *audit.Logger
			if cfg.Audit.Enabled {
				auditor, err = audit.New(cfg.Audit)
				if err != nil {
					return fmt.Errorf("init audit: %w", err)
				}
				defer func() { _ = auditor.Close() }()
			}

			var enforcer *quota.Enforcer
			if cfg.Quota.Enabled && auditor != nil {
				enforcer = quota.New(cfg.Quota.Policies, auditor)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := mcp.New(l, cache, enforcer, auditor, version)
			return srv.Run(ctx, os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "toolsathi.yaml", "path to config file")
	return cmd
}
