package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toolsathi/toolsathi/pkg/audit"
	cachepkg "github.com/toolsathi/toolsathi/pkg/cache/sqlite"
	"github.com/toolsathi/toolsathi/pkg/config"
	"github.com/toolsathi/toolsathi/pkg/generate"
	"github.com/toolsathi/toolsathi/pkg/ledger"
	"github.com/toolsathi/toolsathi/pkg/quota"
	"github.com/toolsathi/toolsathi/pkg/server"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the ToolSathi API server",
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

			var cache *cachepkg.Cache
			if cfg.Cache.Enabled {
				cache, err = cachepkg.New(cfg.DBPath, cfg.Cache.TTL)
				if err != nil {
					return fmt.Errorf("init cache: %w", err)
				}
				defer func() { _ = cache.Close() }()
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
			if cfg.Quota.Enabled {
				if auditor == nil {
					return fmt.Errorf("quota enforcement requires audit logging")
				}
				enforcer = quota.New(cfg.Quota.Policies, auditor)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var provider generate.Provider
			if cfg.Generate.APIKey != "" {
				provider, err = generate.NewGemini(ctx, cfg.Generate.APIKey, cfg.Generate.Models, cfg.Generate.Timeout)
				if err != nil {
					return fmt.Errorf("init provider: %w", err)
				}
			} else {
				log.Println("no generate API key configured, generator tools disabled")
			}

			srv := server.New(cfg, l, provider, cache, enforcer, auditor)

			log.Printf("starting toolsathi api with config: %s", configPath)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "toolsathi.yaml", "path to config file")
	return cmd
}
