// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/staking"
)

type cliTest struct {
	t       *testing.T
	dataDir string
}

func (c *cliTest) run(args ...string) (*bytes.Buffer, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	full := append([]string{"stakepool", "--data-dir", c.dataDir, "--verbosity", "0"}, args...)
	return &out, app.Run(full)
}

func (c *cliTest) mustRun(out any, args ...string) {
	buf, err := c.run(args...)
	require.NoError(c.t, err, "stakepool %v", args)
	if out != nil {
		require.NoError(c.t, json.Unmarshal(buf.Bytes(), out))
	}
}

func TestStakingFlow(t *testing.T) {
	c := &cliTest{t: t, dataDir: t.TempDir()}

	var (
		admin      = ident.NameToAddress("admin").String()
		alice      = ident.NameToAddress("alice").String()
		stakeMint  = ident.NameToAddress("stake").String()
		rewardMint = ident.NameToAddress("reward").String()
		custodyS   = ident.NameToAddress("custody-stake").String()
		custodyR   = ident.NameToAddress("custody-reward").String()
		aliceS     = ident.NameToAddress("alice-stake").String()
		aliceR     = ident.NameToAddress("alice-reward").String()
	)

	var auths authoritiesView
	c.mustRun(&auths, "pool", "authorities", "--staking-mint", stakeMint, "--reward-mint", rewardMint)
	addrs := staking.NewAddresses(defaultConfig().StakingProgram, 0)
	pool, err := addrs.Pool(ident.MustParseAddress(stakeMint), ident.MustParseAddress(rewardMint))
	require.NoError(t, err)
	assert.Equal(t, pool.Address, auths.Pool)

	c.mustRun(nil, "holding", "open", "--holding", custodyS, "--mint", stakeMint, "--owner", auths.StakingCustodyAuthority.String(), "--payer", admin)
	c.mustRun(nil, "holding", "open", "--holding", custodyR, "--mint", rewardMint, "--owner", auths.RewardCustodyAuthority.String(), "--payer", admin)
	c.mustRun(nil, "holding", "mint", "--holding", custodyR, "--amount", "1000000")
	c.mustRun(nil, "holding", "open", "--holding", aliceS, "--mint", stakeMint, "--owner", alice, "--payer", alice)
	c.mustRun(nil, "holding", "open", "--holding", aliceR, "--mint", rewardMint, "--owner", alice, "--payer", alice)
	c.mustRun(nil, "holding", "mint", "--holding", aliceS, "--amount", "1000")

	var view struct {
		Address     ident.Address `json:"address"`
		Admin       ident.Address `json:"admin"`
		TotalSupply uint64        `json:"totalSupply"`
	}
	c.mustRun(&view, "pool", "init", "--admin", admin, "--staking-mint", stakeMint, "--reward-mint", rewardMint,
		"--staking-custody", custodyS, "--reward-custody", custodyR)
	assert.Equal(t, pool.Address, view.Address)
	assert.Equal(t, ident.MustParseAddress(admin), view.Admin)

	var pos struct {
		Balance uint64 `json:"balance"`
	}
	c.mustRun(&pos, "stake", "--depositor", alice, "--holding", aliceS, "--staking-custody", custodyS,
		"--staking-mint", stakeMint, "--reward-mint", rewardMint, "--amount", "500")
	assert.Equal(t, uint64(500), pos.Balance)

	c.mustRun(&pos, "unstake", "--depositor", alice, "--holding", aliceS, "--staking-custody", custodyS,
		"--staking-mint", stakeMint, "--reward-mint", rewardMint, "--amount", "100")
	assert.Equal(t, uint64(400), pos.Balance)

	_, err = c.run("unstake", "--depositor", alice, "--holding", aliceS, "--staking-custody", custodyS,
		"--staking-mint", stakeMint, "--reward-mint", rewardMint, "--amount", "401")
	assert.ErrorIs(t, err, staking.ErrInsufficientBalance)

	var holding struct {
		Owner ident.Address `json:"owner"`
	}
	c.mustRun(&holding, "claim", "--depositor", alice, "--holding", aliceR, "--reward-custody", custodyR,
		"--staking-mint", stakeMint, "--reward-mint", rewardMint)
	assert.Equal(t, ident.MustParseAddress(alice), holding.Owner)

	c.mustRun(&view, "pool", "show", "--staking-mint", stakeMint, "--reward-mint", rewardMint)
	assert.Equal(t, uint64(400), view.TotalSupply)

	c.mustRun(&pos, "position", "show", "--depositor", alice, "--staking-mint", stakeMint, "--reward-mint", rewardMint)
	assert.Equal(t, uint64(400), pos.Balance)

	var stakeHolding struct {
		Amount uint64 `json:"amount"`
	}
	c.mustRun(&stakeHolding, "holding", "show", "--holding", aliceS)
	assert.Equal(t, uint64(600), stakeHolding.Amount)
}

func TestMissingFlag(t *testing.T) {
	c := &cliTest{t: t, dataDir: t.TempDir()}
	_, err := c.run("pool", "show", "--staking-mint", ident.NameToAddress("stake").String())
	assert.ErrorContains(t, err, "--reward-mint is required")
}

func TestAddressCommand(t *testing.T) {
	c := &cliTest{t: t, dataDir: t.TempDir()}
	out, err := c.run("address", "alice")
	require.NoError(t, err)
	assert.Equal(t, ident.NameToAddress("alice").String()+"\n", out.String())
}
