// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/staking/reverts"
)

var (
	version   = "0.1.0"
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "stakepool"
	app.Usage = "Staking ledger with time-proportional rewards"
	app.Flags = []cli.Flag{
		configFlag,
		dataDirFlag,
		verbosityFlag,
		jsonLogsFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		lvl, err := initLogger(ctx)
		if err != nil {
			return err
		}
		ctx.App.Metadata = map[string]any{logLevelKey: lvl}
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:  "pool",
			Usage: "manage pools",
			Subcommands: []cli.Command{
				{
					Name:   "init",
					Usage:  "initialize the pool of an asset pair, re-initializing resets it",
					Flags:  []cli.Flag{adminFlag, stakingMintFlag, rewardMintFlag, stakingCustodyFlag, rewardCustodyFlag},
					Action: withNode(poolInitAction),
				},
				{
					Name:   "show",
					Usage:  "show the pool of an asset pair",
					Flags:  []cli.Flag{stakingMintFlag, rewardMintFlag},
					Action: withNode(poolShowAction),
				},
				{
					Name:   "authorities",
					Usage:  "show the derived addresses of an asset pair, custodies must be owned by them",
					Flags:  []cli.Flag{stakingMintFlag, rewardMintFlag},
					Action: withNode(poolAuthoritiesAction),
				},
			},
		},
		{
			Name:  "holding",
			Usage: "manage holdings",
			Subcommands: []cli.Command{
				{
					Name:   "open",
					Usage:  "open an empty holding, the holding is asserted as signer",
					Flags:  []cli.Flag{holdingFlag, mintFlag, ownerFlag, payerFlag},
					Action: withNode(holdingOpenAction),
				},
				{
					Name:   "mint",
					Usage:  "credit a holding (development faucet)",
					Flags:  []cli.Flag{holdingFlag, amountFlag},
					Action: withNode(holdingMintAction),
				},
				{
					Name:   "show",
					Usage:  "show a holding",
					Flags:  []cli.Flag{holdingFlag},
					Action: withNode(holdingShowAction),
				},
			},
		},
		{
			Name:   "stake",
			Usage:  "deposit into a pool",
			Flags:  []cli.Flag{depositorFlag, holdingFlag, stakingCustodyFlag, stakingMintFlag, rewardMintFlag, amountFlag},
			Action: withNode(stakeAction),
		},
		{
			Name:   "unstake",
			Usage:  "withdraw from a pool",
			Flags:  []cli.Flag{depositorFlag, holdingFlag, stakingCustodyFlag, stakingMintFlag, rewardMintFlag, amountFlag},
			Action: withNode(unstakeAction),
		},
		{
			Name:   "claim",
			Usage:  "claim accrued rewards",
			Flags:  []cli.Flag{depositorFlag, holdingFlag, rewardCustodyFlag, stakingMintFlag, rewardMintFlag},
			Action: withNode(claimAction),
		},
		{
			Name:  "position",
			Usage: "inspect positions",
			Subcommands: []cli.Command{
				{
					Name:   "show",
					Usage:  "show a depositor's position with pending rewards",
					Flags:  []cli.Flag{depositorFlag, stakingMintFlag, rewardMintFlag},
					Action: withNode(positionShowAction),
				},
			},
		},
		{
			Name:      "address",
			Usage:     "print the address derived from a name, for development",
			ArgsUsage: "<name>",
			Action:    addressAction,
		},
		{
			Name:   "serve",
			Usage:  "serve the read-only API",
			Flags:  []cli.Flag{apiAddrFlag, apiCorsFlag, adminAddrFlag, enableMetricsFlag, enableAPILogsFlag},
			Action: serveAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		if code, ok := reverts.CodeOf(err); ok {
			fmt.Fprintf(os.Stderr, "%v (revert code %d)\n", err, code)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
