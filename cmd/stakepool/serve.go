// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/api"
	"github.com/vechain/stakepool/api/admin"
	"github.com/vechain/stakepool/metrics"
)

const logLevelKey = "logLevel"

func serveAction(ctx *cli.Context) error {
	n, err := openNode(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	cfg := n.cfg.API
	if ctx.IsSet(apiAddrFlag.Name) {
		cfg.Addr = ctx.String(apiAddrFlag.Name)
	}
	if ctx.IsSet(apiCorsFlag.Name) {
		cfg.CORS = ctx.String(apiCorsFlag.Name)
	}
	if ctx.IsSet(adminAddrFlag.Name) {
		cfg.AdminAddr = ctx.String(adminAddrFlag.Name)
	}
	cfg.Metrics = cfg.Metrics || ctx.Bool(enableMetricsFlag.Name)
	cfg.RequestLogs = cfg.RequestLogs || ctx.Bool(enableAPILogsFlag.Name)

	if cfg.Metrics {
		metrics.EnablePrometheus()
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	group, groupCtx := errgroup.WithContext(sigCtx)

	handler := api.New(n.ledger, n.processor, n.tokens, api.Options{
		AllowedOrigins:  cfg.CORS,
		EnableReqLogger: cfg.RequestLogs,
		EnableMetrics:   cfg.Metrics,
	})
	if err := serveHTTP(groupCtx, group, "api", cfg.Addr, handler); err != nil {
		return err
	}

	if cfg.AdminAddr != "" {
		lvl, _ := ctx.App.Metadata[logLevelKey].(*slog.LevelVar)
		if lvl == nil {
			return errors.New("log level not initialized")
		}
		if err := serveHTTP(groupCtx, group, "admin", cfg.AdminAddr, admin.New(lvl, n.processor.Addresses())); err != nil {
			stop()
			_ = group.Wait()
			return err
		}
	}

	logger.Info("serving", "api", cfg.Addr, "admin", cfg.AdminAddr, "metrics", cfg.Metrics)
	err = group.Wait()
	logger.Info("exited")
	return err
}

// serveHTTP listens on addr and serves until ctx is done.
func serveHTTP(ctx context.Context, group *errgroup.Group, name, addr string, handler http.Handler) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "serve %s", name)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down", "service", name)
		return srv.Shutdown(shutdownCtx)
	})
	return nil
}
