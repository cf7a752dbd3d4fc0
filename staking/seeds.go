// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/derive"
	"github.com/vechain/stakepool/ident"
)

// Role tags closing each seed tuple.
var (
	PoolTag           = []byte("metadata")
	StakingCustodyTag = []byte("staking-token")
	RewardCustodyTag  = []byte("rewards-token")
	PositionTag       = []byte("user-state")
)

// Addresses derives the addresses of the staking program.
type Addresses struct {
	deriver *derive.Deriver
}

// NewAddresses derives for programID, caching up to cacheSize derivations.
func NewAddresses(programID ident.Address, cacheSize int) Addresses {
	return Addresses{deriver: derive.NewDeriver(programID, cacheSize)}
}

// ProgramID returns the staking program id.
func (a Addresses) ProgramID() ident.Address {
	return a.deriver.ProgramID()
}

// Pool derives the pool ledger address of an asset pair.
func (a Addresses) Pool(stakingAsset, rewardAsset ident.Address) (derive.Authority, error) {
	return a.derive(stakingAsset.Bytes(), rewardAsset.Bytes(), PoolTag)
}

// StakingCustody derives the authority owning the pool's staking custody.
func (a Addresses) StakingCustody(stakingAsset ident.Address) (derive.Authority, error) {
	return a.derive(stakingAsset.Bytes(), StakingCustodyTag)
}

// RewardCustody derives the authority owning the pool's reward custody.
func (a Addresses) RewardCustody(rewardAsset ident.Address) (derive.Authority, error) {
	return a.derive(rewardAsset.Bytes(), RewardCustodyTag)
}

// Position derives the user position address of a depositor in a pool.
func (a Addresses) Position(pool, depositor ident.Address) (derive.Authority, error) {
	return a.derive(pool.Bytes(), depositor.Bytes(), PositionTag)
}

// CacheStats reports derivation cache hits and misses.
func (a Addresses) CacheStats() (hit, miss int64) {
	return a.deriver.CacheStats()
}

func (a Addresses) derive(seeds ...[]byte) (derive.Authority, error) {
	auth, err := a.deriver.Derive(seeds...)
	if err != nil {
		// seeds are fixed-size, so this is a programming error
		return derive.Authority{}, errors.Wrap(err, "derive")
	}
	return auth, nil
}
