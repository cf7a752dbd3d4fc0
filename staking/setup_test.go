// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/host"
	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/token"
)

var (
	tokenID   = ident.NameToAddress("token")
	stakingID = ident.NameToAddress("staking")

	stakeMint  = ident.NameToAddress("mint-stake")
	rewardMint = ident.NameToAddress("mint-reward")

	admin = ident.NameToAddress("admin")

	stakeCustody  = ident.NameToAddress("custody-stake")
	rewardCustody = ident.NameToAddress("custody-reward")
)

const rewardFunds = 1_000_000_000

var modes = []AccrualMode{Checkpoint, Lifetime}

func TestMain(m *testing.M) {
	// meters resolve on first use, so switch before any test records
	metrics.EnablePrometheus()
	os.Exit(m.Run())
}

type PoolTest struct {
	*Processor
	t      *testing.T
	ledger *host.Ledger
	tokens *token.Service
	now    int64
}

func newTest(t *testing.T, mode AccrualMode) *PoolTest {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pt := &PoolTest{t: t, tokens: token.New(tokenID), now: 1_700_000_000}
	pt.ledger = host.New(db, func() int64 { return pt.now })
	pt.Processor = NewProcessor(stakingID, NewEngine(0, mode), pt.tokens, 64)
	pt.ledger.Register(pt.tokens)
	pt.ledger.Register(pt.Processor)
	return pt
}

// newPool returns a test with both custodies opened and an initialized pool.
func newPool(t *testing.T, mode AccrualMode) *PoolTest {
	return newTest(t, mode).OpenCustodies().Initialize(admin)
}

func (pt *PoolTest) submit(req host.Request, err error) error {
	require.NoError(pt.t, err)
	return pt.ledger.Submit(req)
}

func (pt *PoolTest) poolAddress() ident.Address {
	auth, err := pt.addrs.Pool(stakeMint, rewardMint)
	require.NoError(pt.t, err)
	return auth.Address
}

func (pt *PoolTest) positionAddress(depositor ident.Address) ident.Address {
	auth, err := pt.addrs.Position(pt.poolAddress(), depositor)
	require.NoError(pt.t, err)
	return auth.Address
}

// Advance moves the clock forward.
func (pt *PoolTest) Advance(seconds int64) *PoolTest {
	pt.now += seconds
	return pt
}

// OpenCustodies opens both custody holdings, owned by their role authorities,
// and funds the reward custody.
func (pt *PoolTest) OpenCustodies() *PoolTest {
	stakeAuth, err := pt.addrs.StakingCustody(stakeMint)
	require.NoError(pt.t, err)
	rewardAuth, err := pt.addrs.RewardCustody(rewardMint)
	require.NoError(pt.t, err)

	pt.openHolding(stakeCustody, stakeMint, stakeAuth.Address)
	pt.openHolding(rewardCustody, rewardMint, rewardAuth.Address)
	require.NoError(pt.t, pt.ledger.Submit(pt.tokens.MintToRequest(rewardCustody, rewardFunds)))
	return pt
}

func (pt *PoolTest) openHolding(addr, mint, owner ident.Address) {
	require.NoError(pt.t, pt.ledger.Submit(pt.tokens.OpenRequest(admin, addr, mint, owner)))
}

// Initialize initializes the pool and requires success.
func (pt *PoolTest) Initialize(by ident.Address) *PoolTest {
	require.NoError(pt.t, pt.TryInitialize(by))
	return pt
}

func (pt *PoolTest) TryInitialize(by ident.Address) error {
	return pt.submit(pt.InitializeRequest(by, stakeMint, rewardMint, stakeCustody, rewardCustody))
}

// AddDepositor opens the depositor's holdings and funds the staking one.
func (pt *PoolTest) AddDepositor(depositor ident.Address, funds uint64) *PoolTest {
	pt.openHolding(stakeHolding(depositor), stakeMint, depositor)
	pt.openHolding(rewardHolding(depositor), rewardMint, depositor)
	require.NoError(pt.t, pt.ledger.Submit(pt.tokens.MintToRequest(stakeHolding(depositor), funds)))
	return pt
}

func stakeHolding(depositor ident.Address) ident.Address {
	return ident.NameToAddress("stake-holding-" + depositor.String())
}

func rewardHolding(depositor ident.Address) ident.Address {
	return ident.NameToAddress("reward-holding-" + depositor.String())
}

func (pt *PoolTest) Stake(depositor ident.Address, amount uint64) *PoolTest {
	require.NoError(pt.t, pt.TryStake(depositor, amount))
	return pt
}

func (pt *PoolTest) TryStake(depositor ident.Address, amount uint64) error {
	return pt.submit(pt.StakeRequest(depositor, stakeHolding(depositor), stakeCustody, stakeMint, rewardMint, amount))
}

func (pt *PoolTest) Unstake(depositor ident.Address, amount uint64) *PoolTest {
	require.NoError(pt.t, pt.TryUnstake(depositor, amount))
	return pt
}

func (pt *PoolTest) TryUnstake(depositor ident.Address, amount uint64) error {
	return pt.submit(pt.UnstakeRequest(depositor, stakeHolding(depositor), stakeCustody, stakeMint, rewardMint, amount))
}

func (pt *PoolTest) Claim(depositor ident.Address) *PoolTest {
	require.NoError(pt.t, pt.TryClaim(depositor))
	return pt
}

func (pt *PoolTest) TryClaim(depositor ident.Address) error {
	return pt.submit(pt.ClaimRewardsRequest(depositor, rewardHolding(depositor), rewardCustody, stakeMint, rewardMint))
}

func (pt *PoolTest) PoolLedger() *PoolLedger {
	pool, ok, err := pt.Pool(pt.ledger, pt.poolAddress())
	require.NoError(pt.t, err)
	require.True(pt.t, ok, "pool not found")
	return pool
}

func (pt *PoolTest) UserPosition(depositor ident.Address) *UserPosition {
	pos, ok, err := pt.Position(pt.ledger, pt.positionAddress(depositor))
	require.NoError(pt.t, err)
	require.True(pt.t, ok, "position not found")
	return pos
}

func (pt *PoolTest) holdingAmount(addr ident.Address) uint64 {
	h, err := pt.tokens.HoldingAt(pt.ledger, addr)
	require.NoError(pt.t, err)
	return h.Amount
}

func (pt *PoolTest) AssertTotalSupply(expected uint64) *PoolTest {
	assert.Equal(pt.t, expected, pt.PoolLedger().TotalSupply, "total supply mismatch")
	return pt
}

func (pt *PoolTest) AssertRewardPerToken(expected uint64) *PoolTest {
	assert.Equal(pt.t, expected, pt.PoolLedger().RewardPerTokenStored, "reward per token mismatch")
	return pt
}

func (pt *PoolTest) AssertPosition(depositor ident.Address, balance, rewards uint64) *PoolTest {
	pos := pt.UserPosition(depositor)
	assert.Equal(pt.t, balance, pos.Balance, "balance mismatch")
	assert.Equal(pt.t, rewards, pos.Rewards, "rewards mismatch")
	return pt
}

func (pt *PoolTest) AssertRewardHolding(depositor ident.Address, expected uint64) *PoolTest {
	assert.Equal(pt.t, expected, pt.holdingAmount(rewardHolding(depositor)), "reward holding mismatch")
	return pt
}

func (pt *PoolTest) AssertStakeHolding(depositor ident.Address, expected uint64) *PoolTest {
	assert.Equal(pt.t, expected, pt.holdingAmount(stakeHolding(depositor)), "stake holding mismatch")
	return pt
}

func (pt *PoolTest) AssertCustody(expected uint64) *PoolTest {
	assert.Equal(pt.t, expected, pt.holdingAmount(stakeCustody), "staking custody mismatch")
	return pt
}
