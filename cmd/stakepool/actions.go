// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/host"
	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/staking"
)

var logger = log.WithContext("pkg", "cmd")

func poolInitAction(ctx *cli.Context, n *node) error {
	addrs, err := addressFlags(ctx, adminFlag, stakingMintFlag, rewardMintFlag, stakingCustodyFlag, rewardCustodyFlag)
	if err != nil {
		return err
	}
	req, err := n.processor.InitializeRequest(addrs[0], addrs[1], addrs[2], addrs[3], addrs[4])
	if err != nil {
		return err
	}
	if err := n.ledger.Submit(req); err != nil {
		return err
	}
	return showPool(ctx, n, addrs[1], addrs[2])
}

func poolShowAction(ctx *cli.Context, n *node) error {
	addrs, err := addressFlags(ctx, stakingMintFlag, rewardMintFlag)
	if err != nil {
		return err
	}
	return showPool(ctx, n, addrs[0], addrs[1])
}

type poolView struct {
	Address ident.Address `json:"address"`
	*staking.PoolLedger
}

func showPool(ctx *cli.Context, n *node, stakingMint, rewardMint ident.Address) error {
	auth, err := n.processor.Addresses().Pool(stakingMint, rewardMint)
	if err != nil {
		return err
	}
	pool, ok, err := n.processor.Pool(n.ledger, auth.Address)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("no pool for %v/%v", stakingMint, rewardMint)
	}
	return printJSON(ctx, &poolView{Address: auth.Address, PoolLedger: pool})
}

type authoritiesView struct {
	Pool                    ident.Address `json:"pool"`
	StakingCustodyAuthority ident.Address `json:"stakingCustodyAuthority"`
	RewardCustodyAuthority  ident.Address `json:"rewardCustodyAuthority"`
	StakingProgram          ident.Address `json:"stakingProgram"`
	TokenProgram            ident.Address `json:"tokenProgram"`
}

func poolAuthoritiesAction(ctx *cli.Context, n *node) error {
	mints, err := addressFlags(ctx, stakingMintFlag, rewardMintFlag)
	if err != nil {
		return err
	}
	addrs := n.processor.Addresses()
	pool, err := addrs.Pool(mints[0], mints[1])
	if err != nil {
		return err
	}
	stakingAuth, err := addrs.StakingCustody(mints[0])
	if err != nil {
		return err
	}
	rewardAuth, err := addrs.RewardCustody(mints[1])
	if err != nil {
		return err
	}
	return printJSON(ctx, &authoritiesView{
		Pool:                    pool.Address,
		StakingCustodyAuthority: stakingAuth.Address,
		RewardCustodyAuthority:  rewardAuth.Address,
		StakingProgram:          n.processor.ID(),
		TokenProgram:            n.tokens.ID(),
	})
}

func holdingOpenAction(ctx *cli.Context, n *node) error {
	addrs, err := addressFlags(ctx, holdingFlag, mintFlag, ownerFlag, payerFlag)
	if err != nil {
		return err
	}
	if err := n.ledger.Submit(n.tokens.OpenRequest(addrs[3], addrs[0], addrs[1], addrs[2])); err != nil {
		return err
	}
	return showHolding(ctx, n, addrs[0])
}

func holdingMintAction(ctx *cli.Context, n *node) error {
	holding, err := addressFlag(ctx, holdingFlag)
	if err != nil {
		return err
	}
	if err := n.ledger.Submit(n.tokens.MintToRequest(holding, ctx.Uint64(amountFlag.Name))); err != nil {
		return err
	}
	return showHolding(ctx, n, holding)
}

func holdingShowAction(ctx *cli.Context, n *node) error {
	holding, err := addressFlag(ctx, holdingFlag)
	if err != nil {
		return err
	}
	return showHolding(ctx, n, holding)
}

func showHolding(ctx *cli.Context, n *node, addr ident.Address) error {
	h, err := n.tokens.HoldingAt(n.ledger, addr)
	if err != nil {
		return err
	}
	return printJSON(ctx, h)
}

func stakeAction(ctx *cli.Context, n *node) error {
	return moveStake(ctx, n, n.processor.StakeRequest)
}

func unstakeAction(ctx *cli.Context, n *node) error {
	return moveStake(ctx, n, n.processor.UnstakeRequest)
}

type stakeRequestFunc func(depositor, holding, custody, stakingMint, rewardMint ident.Address, amount uint64) (host.Request, error)

func moveStake(ctx *cli.Context, n *node, build stakeRequestFunc) error {
	addrs, err := addressFlags(ctx, depositorFlag, holdingFlag, stakingCustodyFlag, stakingMintFlag, rewardMintFlag)
	if err != nil {
		return err
	}
	req, err := build(addrs[0], addrs[1], addrs[2], addrs[3], addrs[4], ctx.Uint64(amountFlag.Name))
	if err != nil {
		return err
	}
	if err := n.ledger.Submit(req); err != nil {
		return err
	}
	return showPosition(ctx, n, addrs[0], addrs[3], addrs[4])
}

func claimAction(ctx *cli.Context, n *node) error {
	addrs, err := addressFlags(ctx, depositorFlag, holdingFlag, rewardCustodyFlag, stakingMintFlag, rewardMintFlag)
	if err != nil {
		return err
	}
	before, err := n.tokens.HoldingAt(n.ledger, addrs[1])
	if err != nil {
		return err
	}
	req, err := n.processor.ClaimRewardsRequest(addrs[0], addrs[1], addrs[2], addrs[3], addrs[4])
	if err != nil {
		return err
	}
	if err := n.ledger.Submit(req); err != nil {
		return err
	}
	after, err := n.tokens.HoldingAt(n.ledger, addrs[1])
	if err != nil {
		return err
	}
	logger.Info("rewards claimed", "depositor", addrs[0], "amount", after.Amount-before.Amount)
	return showHolding(ctx, n, addrs[1])
}

func positionShowAction(ctx *cli.Context, n *node) error {
	addrs, err := addressFlags(ctx, depositorFlag, stakingMintFlag, rewardMintFlag)
	if err != nil {
		return err
	}
	return showPosition(ctx, n, addrs[0], addrs[1], addrs[2])
}

type positionView struct {
	Address ident.Address `json:"address"`
	*staking.UserPosition
	PendingRewards uint64 `json:"pendingRewards"`
}

func showPosition(ctx *cli.Context, n *node, depositor, stakingMint, rewardMint ident.Address) error {
	addrs := n.processor.Addresses()
	pool, err := addrs.Pool(stakingMint, rewardMint)
	if err != nil {
		return err
	}
	auth, err := addrs.Position(pool.Address, depositor)
	if err != nil {
		return err
	}
	ledger, ok, err := n.processor.Pool(n.ledger, pool.Address)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("no pool for %v/%v", stakingMint, rewardMint)
	}
	pos, ok, err := n.processor.Position(n.ledger, auth.Address)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("%v has no position in %v", depositor, pool.Address)
	}
	pending, err := n.processor.Engine().Pending(*ledger, *pos, host.SystemClock())
	if err != nil {
		return err
	}
	return printJSON(ctx, &positionView{Address: auth.Address, UserPosition: pos, PendingRewards: pending})
}

func addressAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one name")
	}
	_, err := ctx.App.Writer.Write([]byte(ident.NameToAddress(ctx.Args().First()).String() + "\n"))
	return err
}
