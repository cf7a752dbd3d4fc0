// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"os/user"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/host"
	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/staking"
	"github.com/vechain/stakepool/token"
)

// initLogger installs the root logger and returns its level, which the admin
// API may change at runtime.
func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	verbosity, err := readIntFromUInt64Flag(ctx.GlobalUint64(verbosityFlag.Name))
	if err != nil {
		return nil, errors.WithMessage(err, verbosityFlag.Name)
	}
	lvl := &slog.LevelVar{}
	lvl.Set(log.FromLegacyLevel(verbosity))

	output := os.Stderr
	useColor := (isatty.IsTerminal(output.Fd()) || isatty.IsCygwinTerminal(output.Fd())) && os.Getenv("TERM") != "dumb"
	handler := log.NewHandler(output, lvl, ctx.GlobalBool(jsonLogsFlag.Name), useColor)
	log.SetDefault(log.NewLogger(handler))
	return lvl, nil
}

func readIntFromUInt64Flag(val uint64) (int, error) {
	if val > math.MaxInt {
		return 0, errors.Errorf("invalid value %d, must be <= %d", val, math.MaxInt)
	}
	return int(val), nil
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".stakepool")
	}
	return ""
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use --%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

// node bundles the ledger and the programs registered on it.
type node struct {
	cfg       *Config
	db        *lvldb.LevelDB
	ledger    *host.Ledger
	tokens    *token.Service
	processor *staking.Processor
}

func openNode(ctx *cli.Context) (*node, error) {
	cfg, err := loadConfig(ctx.GlobalString(configFlag.Name))
	if err != nil {
		return nil, err
	}
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(dataDir, "ledger.db")
	db, err := lvldb.New(dir, cfg.Database)
	if err != nil {
		return nil, errors.WithMessagef(err, "open ledger database at [%v]", dir)
	}

	n := &node{
		cfg:    cfg,
		db:     db,
		ledger: host.New(db, host.SystemClock),
		tokens: token.New(cfg.TokenProgram),
	}
	n.processor = staking.NewProcessor(cfg.StakingProgram, cfg.engine(), n.tokens, cfg.DeriveCacheSize)
	n.ledger.Register(n.tokens)
	n.ledger.Register(n.processor)
	return n, nil
}

func (n *node) Close() error {
	if stats, err := n.db.Stats(); err == nil {
		logger.Debug("closing ledger database", "read", stats.IORead, "written", stats.IOWrite, "tables", stats.OpenedTablesCount)
	}
	return n.db.Close()
}

// withNode opens the node for the duration of fn.
func withNode(fn func(ctx *cli.Context, n *node) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		n, err := openNode(ctx)
		if err != nil {
			return err
		}
		defer n.Close()
		return fn(ctx, n)
	}
}

// addressFlag parses a required base58 address flag.
func addressFlag(ctx *cli.Context, flag cli.StringFlag) (ident.Address, error) {
	v := ctx.String(flag.Name)
	if v == "" {
		return ident.Address{}, errors.Errorf("--%s is required", flag.Name)
	}
	addr, err := ident.ParseAddress(v)
	if err != nil {
		return ident.Address{}, errors.WithMessagef(err, "--%s", flag.Name)
	}
	return addr, nil
}

// addressFlags parses several required address flags.
func addressFlags(ctx *cli.Context, flags ...cli.StringFlag) ([]ident.Address, error) {
	out := make([]ident.Address, len(flags))
	for i, f := range flags {
		addr, err := addressFlag(ctx, f)
		if err != nil {
			return nil, err
		}
		out[i] = addr
	}
	return out, nil
}

func printJSON(ctx *cli.Context, v any) error {
	enc := json.NewEncoder(ctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
