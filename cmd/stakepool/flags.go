// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/log"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the yaml configuration file",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger database",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Usage: "API service listening address, overrides the config",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Usage: "admin service listening address, disabled when empty",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables prometheus metrics on /metrics",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}

	adminFlag = cli.StringFlag{
		Name:  "admin",
		Usage: "pool admin, asserted as signer and payer",
	}
	stakingMintFlag = cli.StringFlag{
		Name:  "staking-mint",
		Usage: "staking asset id",
	}
	rewardMintFlag = cli.StringFlag{
		Name:  "reward-mint",
		Usage: "reward asset id",
	}
	stakingCustodyFlag = cli.StringFlag{
		Name:  "staking-custody",
		Usage: "holding escrowing staked assets",
	}
	rewardCustodyFlag = cli.StringFlag{
		Name:  "reward-custody",
		Usage: "holding funding rewards",
	}
	depositorFlag = cli.StringFlag{
		Name:  "depositor",
		Usage: "depositor, asserted as signer",
	}
	holdingFlag = cli.StringFlag{
		Name:  "holding",
		Usage: "holding address",
	}
	mintFlag = cli.StringFlag{
		Name:  "mint",
		Usage: "asset id of the holding",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "owner of the holding",
	}
	payerFlag = cli.StringFlag{
		Name:  "payer",
		Usage: "payer of the allocation, asserted as signer",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "amount in base units",
	}
)
