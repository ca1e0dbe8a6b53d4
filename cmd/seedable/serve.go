// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/genie-coder21/seedable/internal/api"
	"github.com/genie-coder21/seedable/internal/buildinfo"
	"github.com/genie-coder21/seedable/internal/config"
	"github.com/genie-coder21/seedable/internal/logger"
	"github.com/genie-coder21/seedable/internal/metrics"
	"github.com/genie-coder21/seedable/internal/services/search"
	"github.com/genie-coder21/seedable/internal/services/seedfilter"
	"github.com/genie-coder21/seedable/internal/torznab"
	"github.com/genie-coder21/seedable/pkg/arr"
	"github.com/genie-coder21/seedable/pkg/nzbhydra"
)

func RunServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the proxy server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			appConfig, err := config.New(configPath, buildinfo.Version)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg := appConfig.Config

			logger.Setup(cfg)

			log.Info().
				Str("version", buildinfo.Version).
				Str("hydraUrl", cfg.HydraURL).
				Int("minDuplicates", cfg.MinDuplicates).
				Strs("privateTrackers", cfg.PrivateTrackerList()).
				Msg("starting seedable")

			engine := seedfilter.NewService(
				cfg.MinDuplicates,
				cfg.PrivateTrackerList(),
				torznab.MapCategory,
				time.Duration(cfg.CacheTTL)*time.Second,
			)

			hydra := nzbhydra.NewClient(nzbhydra.Config{
				Host:      cfg.HydraURL,
				APIKey:    cfg.HydraAPIKey,
				Timeout:   cfg.SearchTimeout,
				UserAgent: buildinfo.UserAgent,
			})

			radarr := arr.NewClient(arr.Config{
				Host:      cfg.RadarrURL,
				APIKey:    cfg.RadarrAPIKey,
				Timeout:   cfg.TitleLookupTimeout,
				UserAgent: buildinfo.UserAgent,
			})

			sonarr := arr.NewClient(arr.Config{
				Host:      cfg.SonarrURL,
				APIKey:    cfg.SonarrAPIKey,
				Timeout:   cfg.TitleLookupTimeout,
				UserAgent: buildinfo.UserAgent,
			})

			var metricsManager *metrics.Manager
			if cfg.MetricsEnabled {
				metricsManager = metrics.NewManager()
			}

			searchService := search.NewService(cfg, hydra, radarr, sonarr, engine, metricsManager)

			server := api.NewServer(&api.Dependencies{
				Config:         cfg,
				SearchService:  searchService,
				MetricsManager: metricsManager,
			})

			addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 15 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Msg("http server listening")
				errCh <- httpServer.ListenAndServe()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
			case sig := <-sigCh:
				log.Info().Str("signal", sig.String()).Msg("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file or directory")

	return cmd
}
