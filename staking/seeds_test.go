// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/derive"
	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/token"
)

func TestAddressesDeterministic(t *testing.T) {
	a := NewAddresses(stakingID, 0)
	b := NewAddresses(stakingID, 8)

	p1, err := a.Pool(stakeMint, rewardMint)
	require.NoError(t, err)
	p2, err := b.Pool(stakeMint, rewardMint)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.NoError(t, p1.Verify(stakingID))

	found, err := derive.Find(stakingID, stakeMint.Bytes(), rewardMint.Bytes(), PoolTag)
	require.NoError(t, err)
	assert.Equal(t, found.Address, p1.Address)

	swapped, err := a.Pool(rewardMint, stakeMint)
	require.NoError(t, err)
	assert.NotEqual(t, p1.Address, swapped.Address)

	other, err := NewAddresses(ident.NameToAddress("other"), 0).Pool(stakeMint, rewardMint)
	require.NoError(t, err)
	assert.NotEqual(t, p1.Address, other.Address)
}

func TestAddressesRoleTags(t *testing.T) {
	a := NewAddresses(stakingID, 8)
	mint := ident.NameToAddress("same-mint")

	staking, err := a.StakingCustody(mint)
	require.NoError(t, err)
	reward, err := a.RewardCustody(mint)
	require.NoError(t, err)
	assert.NotEqual(t, staking.Address, reward.Address)

	again, err := a.StakingCustody(mint)
	require.NoError(t, err)
	assert.Equal(t, staking, again)

	hit, miss := a.CacheStats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(2), miss)
}

func TestAddressesPosition(t *testing.T) {
	a := NewAddresses(stakingID, 0)
	pool, err := a.Pool(stakeMint, rewardMint)
	require.NoError(t, err)

	pa, err := a.Position(pool.Address, alice)
	require.NoError(t, err)
	pb, err := a.Position(pool.Address, bob)
	require.NoError(t, err)
	assert.NotEqual(t, pa.Address, pb.Address)
	assert.Equal(t, [][]byte{pool.Address.Bytes(), alice.Bytes(), PositionTag}, pa.Seeds)
}

func TestVerifyCustodyOwner(t *testing.T) {
	auth, err := NewAddresses(stakingID, 0).StakingCustody(stakeMint)
	require.NoError(t, err)

	custody := &token.Holding{Mint: stakeMint, Owner: auth.Address}
	assert.NoError(t, VerifyCustodyOwner(custody, auth.Address))
	assert.NoError(t, verifyCustody(custody, auth.Address, stakeMint))

	assert.ErrorIs(t, VerifyCustodyOwner(custody, alice), ErrAuthorityMismatch)
	assert.ErrorIs(t, verifyCustody(custody, auth.Address, rewardMint), ErrCustodyMint)
}
