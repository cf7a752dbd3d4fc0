// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/stakepool/host"
	"github.com/vechain/stakepool/ident"
)

// InitializeRequest builds the request creating the pool of an asset pair.
// Both custody holdings must already exist, owned by their role authorities.
func (p *Processor) InitializeRequest(admin, stakingMint, rewardMint, stakingCustody, rewardCustody ident.Address) (host.Request, error) {
	pool, err := p.addrs.Pool(stakingMint, rewardMint)
	if err != nil {
		return host.Request{}, err
	}
	return host.Request{
		ProgramID: p.ID(),
		Accounts: []host.AccountMeta{
			{Address: admin, Signer: true},
			{Address: pool.Address, Writable: true},
			{Address: stakingMint},
			{Address: rewardMint},
			{Address: stakingCustody, Writable: true},
			{Address: rewardCustody, Writable: true},
			{Address: host.AllocatorID},
			{Address: p.tokens.ID()},
		},
		Data: Instruction{Kind: KindInitialize}.Encode(),
	}, nil
}

// StakeRequest builds a deposit of amount from the depositor's holding.
func (p *Processor) StakeRequest(depositor, holding, stakingCustody, stakingMint, rewardMint ident.Address, amount uint64) (host.Request, error) {
	pool, pos, err := p.poolAndPosition(stakingMint, rewardMint, depositor)
	if err != nil {
		return host.Request{}, err
	}
	return host.Request{
		ProgramID: p.ID(),
		Accounts: []host.AccountMeta{
			{Address: depositor, Signer: true},
			{Address: holding, Writable: true},
			{Address: stakingCustody, Writable: true},
			{Address: pos, Writable: true},
			{Address: pool, Writable: true},
			{Address: stakingMint},
			{Address: p.tokens.ID()},
			{Address: host.AllocatorID},
		},
		Data: Instruction{Kind: KindStake, Amount: amount}.Encode(),
	}, nil
}

// UnstakeRequest builds a withdrawal of amount into the depositor's holding.
func (p *Processor) UnstakeRequest(depositor, holding, stakingCustody, stakingMint, rewardMint ident.Address, amount uint64) (host.Request, error) {
	pool, pos, err := p.poolAndPosition(stakingMint, rewardMint, depositor)
	if err != nil {
		return host.Request{}, err
	}
	auth, err := p.addrs.StakingCustody(stakingMint)
	if err != nil {
		return host.Request{}, err
	}
	return host.Request{
		ProgramID: p.ID(),
		Accounts: []host.AccountMeta{
			{Address: depositor, Signer: true},
			{Address: holding, Writable: true},
			{Address: pos, Writable: true},
			{Address: pool, Writable: true},
			{Address: stakingCustody, Writable: true},
			{Address: auth.Address},
			{Address: stakingMint},
			{Address: p.tokens.ID()},
		},
		Data: Instruction{Kind: KindUnstake, Amount: amount}.Encode(),
	}, nil
}

// ClaimRewardsRequest builds a claim paying into the depositor's reward holding.
func (p *Processor) ClaimRewardsRequest(depositor, rewardHolding, rewardCustody, stakingMint, rewardMint ident.Address) (host.Request, error) {
	pool, pos, err := p.poolAndPosition(stakingMint, rewardMint, depositor)
	if err != nil {
		return host.Request{}, err
	}
	auth, err := p.addrs.RewardCustody(rewardMint)
	if err != nil {
		return host.Request{}, err
	}
	return host.Request{
		ProgramID: p.ID(),
		Accounts: []host.AccountMeta{
			{Address: depositor, Signer: true},
			{Address: rewardHolding, Writable: true},
			{Address: pos, Writable: true},
			{Address: pool, Writable: true},
			{Address: rewardCustody, Writable: true},
			{Address: auth.Address},
			{Address: rewardMint},
			{Address: p.tokens.ID()},
		},
		Data: Instruction{Kind: KindClaimRewards}.Encode(),
	}, nil
}

func (p *Processor) poolAndPosition(stakingMint, rewardMint, depositor ident.Address) (pool, pos ident.Address, err error) {
	poolAuth, err := p.addrs.Pool(stakingMint, rewardMint)
	if err != nil {
		return
	}
	posAuth, err := p.addrs.Position(poolAuth.Address, depositor)
	if err != nil {
		return
	}
	return poolAuth.Address, posAuth.Address, nil
}
