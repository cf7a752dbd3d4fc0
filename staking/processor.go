// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking is the staking program: pools keyed by an asset pair,
// depositor positions, and time-proportional reward accrual.
package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/host"
	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/staking/reverts"
	"github.com/vechain/stakepool/token"
)

// requiredAccounts is the account count of every operation.
const requiredAccounts = 8

var (
	logger = log.WithContext("pkg", "staking")

	metricOps    = metrics.NewCounter("staking_ops_count", "staking operations by outcome", "op", "status")
	metricAmount = metrics.NewCounter("staking_amount_total", "staked and unstaked amounts", "op")
)

// Processor is the staking program.
type Processor struct {
	addrs  Addresses
	engine Engine
	tokens *token.Service
}

var _ host.Program = (*Processor)(nil)

// NewProcessor creates the program. cacheSize bounds the derivation cache.
func NewProcessor(programID ident.Address, engine Engine, tokens *token.Service, cacheSize int) *Processor {
	return &Processor{
		addrs:  NewAddresses(programID, cacheSize),
		engine: engine,
		tokens: tokens,
	}
}

// ID returns the program id.
func (p *Processor) ID() ident.Address {
	return p.addrs.ProgramID()
}

// Addresses returns the program's address deriver.
func (p *Processor) Addresses() Addresses {
	return p.addrs
}

// Engine returns the accrual engine.
func (p *Processor) Engine() Engine {
	return p.engine
}

// Process decodes and dispatches one request.
func (p *Processor) Process(ctx *host.Context, accounts []host.AccountMeta, data []byte) (err error) {
	ins, err := DecodeInstruction(data)
	if err != nil {
		metricOps().Add(1, metrics.Labels{"op": "unknown", "status": "failure"})
		return err
	}

	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
			code, ok := reverts.CodeOf(err)
			if !ok {
				status = "error"
			}
			logger.Info(ins.Kind.String()+" failed", "code", code, "error", err)
		} else if ins.Kind.hasAmount() {
			metricAmount().Add(ins.Amount, metrics.Labels{"op": ins.Kind.String()})
		}
		metricOps().Add(1, metrics.Labels{"op": ins.Kind.String(), "status": status})
	}()

	if len(accounts) < requiredAccounts {
		return errors.WithMessagef(ErrNotEnoughAccounts, "%v needs %d, got %d", ins.Kind, requiredAccounts, len(accounts))
	}

	switch ins.Kind {
	case KindInitialize:
		return p.initialize(ctx, accounts)
	case KindStake:
		return p.stake(ctx, accounts, ins.Amount)
	case KindUnstake:
		return p.unstake(ctx, accounts, ins.Amount)
	case KindClaimRewards:
		return p.claimRewards(ctx, accounts)
	}
	return errors.WithMessagef(ErrDecodeFailure, "unknown kind %v", ins.Kind)
}

// initialize accounts: admin(s), pool(w), staking mint, reward mint,
// staking custody(w), reward custody(w), allocator, token program.
func (p *Processor) initialize(ctx *host.Context, accounts []host.AccountMeta) error {
	var (
		admin          = accounts[0].Address
		poolAddr       = accounts[1].Address
		stakingMint    = accounts[2].Address
		rewardMint     = accounts[3].Address
		stakingCustody = accounts[4].Address
		rewardCustody  = accounts[5].Address
	)
	if err := requireSigner(ctx, admin); err != nil {
		return err
	}
	if err := p.checkPrograms(accounts[6].Address, accounts[7].Address); err != nil {
		return err
	}

	poolAuth, err := p.addrs.Pool(stakingMint, rewardMint)
	if err != nil {
		return err
	}
	if poolAuth.Address != poolAddr {
		return errors.WithMessagef(ErrInvalidDerivedAddress, "pool %v, derived %v", poolAddr, poolAuth.Address)
	}

	existing, ok, err := p.loadPool(ctx, poolAddr)
	if err != nil {
		return err
	}
	if ok {
		logger.Warn("re-initializing pool, stored supply and accumulator are discarded",
			"pool", poolAddr,
			"admin", admin,
			"previousAdmin", existing.Admin,
			"previousTotalSupply", existing.TotalSupply,
		)
	} else {
		if err := ctx.Allocate(poolAddr, PoolLedgerSize, p.ID(), admin, poolAuth.SignerSeeds()...); err != nil {
			return err
		}
	}

	pool := &PoolLedger{
		Admin:               admin,
		StakingAsset:        stakingMint,
		RewardAsset:         rewardMint,
		LastUpdateTimestamp: ctx.Now(),
	}
	if err := ctx.Put(poolAddr, EncodePoolLedger(pool)); err != nil {
		return err
	}

	stakingAuth, err := p.addrs.StakingCustody(stakingMint)
	if err != nil {
		return err
	}
	rewardAuth, err := p.addrs.RewardCustody(rewardMint)
	if err != nil {
		return err
	}
	if err := p.checkCustody(ctx, stakingCustody, stakingAuth.Address, stakingMint); err != nil {
		return err
	}
	if err := p.checkCustody(ctx, rewardCustody, rewardAuth.Address, rewardMint); err != nil {
		return err
	}

	logger.Info("initialized pool", "pool", poolAddr, "admin", admin, "staking", stakingMint, "reward", rewardMint, "time", pool.LastUpdateTimestamp)
	return nil
}

// stake accounts: depositor(s), depositor holding(w), staking custody(w),
// position(w), pool(w), staking mint, token program, allocator.
func (p *Processor) stake(ctx *host.Context, accounts []host.AccountMeta, amount uint64) error {
	var (
		depositor      = accounts[0].Address
		holding        = accounts[1].Address
		stakingCustody = accounts[2].Address
		positionAddr   = accounts[3].Address
		poolAddr       = accounts[4].Address
		stakingMint    = accounts[5].Address
	)
	logger.Debug("staking", "depositor", depositor, "pool", poolAddr, "amount", amount)

	if err := requireSigner(ctx, depositor); err != nil {
		return err
	}
	if err := p.checkPrograms(accounts[7].Address, accounts[6].Address); err != nil {
		return err
	}
	pool, err := p.mustLoadPool(ctx, poolAddr)
	if err != nil {
		return err
	}
	if stakingMint != pool.StakingAsset {
		return errors.WithMessagef(ErrInvalidDerivedAddress, "staking asset %v, pool has %v", stakingMint, pool.StakingAsset)
	}
	stakingAuth, err := p.addrs.StakingCustody(stakingMint)
	if err != nil {
		return err
	}
	if err := p.checkCustody(ctx, stakingCustody, stakingAuth.Address, stakingMint); err != nil {
		return err
	}

	if err := p.tokens.Transfer(ctx, holding, stakingCustody, depositor, amount); err != nil {
		return err
	}

	posAuth, err := p.addrs.Position(poolAddr, depositor)
	if err != nil {
		return err
	}
	if posAuth.Address != positionAddr {
		return errors.WithMessagef(ErrInvalidDerivedAddress, "position %v, derived %v", positionAddr, posAuth.Address)
	}
	pos, ok, err := p.loadPosition(ctx, positionAddr)
	if err != nil {
		return err
	}
	if !ok {
		if err := ctx.Allocate(positionAddr, UserPositionSize, p.ID(), depositor, posAuth.SignerSeeds()...); err != nil {
			return err
		}
		pos = &UserPosition{}
		logger.Debug("opened position", "position", positionAddr, "depositor", depositor)
	}

	if err := p.settle(ctx, poolAddr, pool, positionAddr, pos); err != nil {
		return err
	}

	balance, overflow := addU64(pos.Balance, amount)
	if overflow {
		return errors.WithMessage(ErrOverflow, "position balance")
	}
	supply, overflow := addU64(pool.TotalSupply, amount)
	if overflow {
		return errors.WithMessage(ErrOverflow, "total supply")
	}
	pos.Balance, pool.TotalSupply = balance, supply
	if err := p.persist(ctx, poolAddr, pool, positionAddr, pos); err != nil {
		return err
	}

	logger.Info("staked", "depositor", depositor, "pool", poolAddr, "amount", amount, "balance", pos.Balance, "totalSupply", pool.TotalSupply)
	return nil
}

// unstake accounts: depositor(s), depositor holding(w), position(w), pool(w),
// staking custody(w), staking custody authority, staking mint, token program.
func (p *Processor) unstake(ctx *host.Context, accounts []host.AccountMeta, amount uint64) error {
	var (
		depositor      = accounts[0].Address
		holding        = accounts[1].Address
		positionAddr   = accounts[2].Address
		poolAddr       = accounts[3].Address
		stakingCustody = accounts[4].Address
		authority      = accounts[5].Address
		stakingMint    = accounts[6].Address
	)
	logger.Debug("unstaking", "depositor", depositor, "pool", poolAddr, "amount", amount)

	if err := requireSigner(ctx, depositor); err != nil {
		return err
	}
	if err := p.checkTokenProgram(accounts[7].Address); err != nil {
		return err
	}
	pool, pos, err := p.loadPair(ctx, poolAddr, positionAddr, depositor)
	if err != nil {
		return err
	}
	if stakingMint != pool.StakingAsset {
		return errors.WithMessagef(ErrInvalidDerivedAddress, "staking asset %v, pool has %v", stakingMint, pool.StakingAsset)
	}

	if err := p.settle(ctx, poolAddr, pool, positionAddr, pos); err != nil {
		return err
	}
	if amount > pos.Balance {
		return errors.WithMessagef(ErrInsufficientBalance, "staked %d, requested %d", pos.Balance, amount)
	}

	stakingAuth, err := p.addrs.StakingCustody(stakingMint)
	if err != nil {
		return err
	}
	if err := p.checkCustody(ctx, stakingCustody, stakingAuth.Address, stakingMint); err != nil {
		return err
	}
	if authority != stakingAuth.Address {
		return errors.WithMessagef(ErrInvalidDerivedAddress, "custody authority %v, derived %v", authority, stakingAuth.Address)
	}
	if err := p.tokens.Transfer(ctx, stakingCustody, holding, stakingAuth.Address, amount, stakingAuth.SignerSeeds()...); err != nil {
		return err
	}

	balance, underflow := subU64(pos.Balance, amount)
	if underflow {
		return errors.WithMessage(ErrUnderflow, "position balance")
	}
	supply, underflow := subU64(pool.TotalSupply, amount)
	if underflow {
		return errors.WithMessage(ErrUnderflow, "total supply")
	}
	pos.Balance, pool.TotalSupply = balance, supply
	if err := p.persist(ctx, poolAddr, pool, positionAddr, pos); err != nil {
		return err
	}

	logger.Info("unstaked", "depositor", depositor, "pool", poolAddr, "amount", amount, "balance", pos.Balance, "totalSupply", pool.TotalSupply)
	return nil
}

// claimRewards accounts: depositor(s), depositor reward holding(w),
// position(w), pool(w), reward custody(w), reward custody authority,
// reward mint, token program.
func (p *Processor) claimRewards(ctx *host.Context, accounts []host.AccountMeta) error {
	var (
		depositor     = accounts[0].Address
		holding       = accounts[1].Address
		positionAddr  = accounts[2].Address
		poolAddr      = accounts[3].Address
		rewardCustody = accounts[4].Address
		authority     = accounts[5].Address
		rewardMint    = accounts[6].Address
	)
	logger.Debug("claiming rewards", "depositor", depositor, "pool", poolAddr)

	if err := requireSigner(ctx, depositor); err != nil {
		return err
	}
	if err := p.checkTokenProgram(accounts[7].Address); err != nil {
		return err
	}
	pool, pos, err := p.loadPair(ctx, poolAddr, positionAddr, depositor)
	if err != nil {
		return err
	}
	if rewardMint != pool.RewardAsset {
		return errors.WithMessagef(ErrInvalidDerivedAddress, "reward asset %v, pool has %v", rewardMint, pool.RewardAsset)
	}

	if err := p.settle(ctx, poolAddr, pool, positionAddr, pos); err != nil {
		return err
	}
	rewards := pos.Rewards

	rewardAuth, err := p.addrs.RewardCustody(rewardMint)
	if err != nil {
		return err
	}
	if err := p.checkCustody(ctx, rewardCustody, rewardAuth.Address, rewardMint); err != nil {
		return err
	}
	if authority != rewardAuth.Address {
		return errors.WithMessagef(ErrInvalidDerivedAddress, "custody authority %v, derived %v", authority, rewardAuth.Address)
	}
	// a zero amount is still issued, the token service treats it as a no-op
	if err := p.tokens.Transfer(ctx, rewardCustody, holding, rewardAuth.Address, rewards, rewardAuth.SignerSeeds()...); err != nil {
		return err
	}

	pos.Rewards = 0
	if err := ctx.Put(positionAddr, EncodeUserPosition(pos)); err != nil {
		return err
	}

	logger.Info("claimed rewards", "depositor", depositor, "pool", poolAddr, "amount", rewards)
	return nil
}

// settle checkpoints and persists both records.
func (p *Processor) settle(ctx *host.Context, poolAddr ident.Address, pool *PoolLedger, posAddr ident.Address, pos *UserPosition) error {
	if err := p.engine.Settle(pool, pos, ctx.Now()); err != nil {
		return err
	}
	return p.persist(ctx, poolAddr, pool, posAddr, pos)
}

func (p *Processor) persist(ctx *host.Context, poolAddr ident.Address, pool *PoolLedger, posAddr ident.Address, pos *UserPosition) error {
	if err := ctx.Put(poolAddr, EncodePoolLedger(pool)); err != nil {
		return err
	}
	return ctx.Put(posAddr, EncodeUserPosition(pos))
}

func requireSigner(ctx *host.Context, addr ident.Address) error {
	if !ctx.IsSigner(addr) {
		return errors.WithMessagef(ErrMissingRequiredSignature, "%v", addr)
	}
	return nil
}

func (p *Processor) checkPrograms(allocator, tokenProgram ident.Address) error {
	if allocator != host.AllocatorID {
		return errors.WithMessagef(ErrIncorrectProgramID, "allocator %v", allocator)
	}
	return p.checkTokenProgram(tokenProgram)
}

func (p *Processor) checkTokenProgram(id ident.Address) error {
	if id != p.tokens.ID() {
		return errors.WithMessagef(ErrIncorrectProgramID, "token program %v", id)
	}
	return nil
}

func (p *Processor) checkCustody(ctx *host.Context, addr, authority, asset ident.Address) error {
	custody, err := p.tokens.Holding(ctx, addr)
	if err != nil {
		return err
	}
	return verifyCustody(custody, authority, asset)
}

// loadPair loads the pool and an existing position, checking both addresses.
func (p *Processor) loadPair(ctx *host.Context, poolAddr, posAddr, depositor ident.Address) (*PoolLedger, *UserPosition, error) {
	pool, err := p.mustLoadPool(ctx, poolAddr)
	if err != nil {
		return nil, nil, err
	}
	posAuth, err := p.addrs.Position(poolAddr, depositor)
	if err != nil {
		return nil, nil, err
	}
	if posAuth.Address != posAddr {
		return nil, nil, errors.WithMessagef(ErrInvalidDerivedAddress, "position %v, derived %v", posAddr, posAuth.Address)
	}
	pos, ok, err := p.loadPosition(ctx, posAddr)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, errors.WithMessagef(ErrDecodeFailure, "no position at %v", posAddr)
	}
	return pool, pos, nil
}

// mustLoadPool loads an initialized pool whose address matches its assets.
func (p *Processor) mustLoadPool(ctx *host.Context, addr ident.Address) (*PoolLedger, error) {
	pool, ok, err := p.loadPool(ctx, addr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.WithMessagef(ErrPoolNotInitialized, "%v", addr)
	}
	auth, err := p.addrs.Pool(pool.StakingAsset, pool.RewardAsset)
	if err != nil {
		return nil, err
	}
	if auth.Address != addr {
		return nil, errors.WithMessagef(ErrInvalidDerivedAddress, "pool %v, derived %v", addr, auth.Address)
	}
	return pool, nil
}

type recordGetter interface {
	Get(addr ident.Address) (*host.Record, bool, error)
}

type ledgerGetter struct{ *host.Ledger }

func (g ledgerGetter) Get(addr ident.Address) (*host.Record, bool, error) {
	return g.Record(addr)
}

func (p *Processor) loadPool(g recordGetter, addr ident.Address) (*PoolLedger, bool, error) {
	data, ok, err := p.load(g, addr)
	if err != nil || !ok {
		return nil, ok, err
	}
	pool, err := DecodePoolLedger(data)
	if err != nil {
		return nil, false, err
	}
	return pool, true, nil
}

func (p *Processor) loadPosition(g recordGetter, addr ident.Address) (*UserPosition, bool, error) {
	data, ok, err := p.load(g, addr)
	if err != nil || !ok {
		return nil, ok, err
	}
	pos, err := DecodeUserPosition(data)
	if err != nil {
		return nil, false, err
	}
	return pos, true, nil
}

func (p *Processor) load(g recordGetter, addr ident.Address) ([]byte, bool, error) {
	r, ok, err := g.Get(addr)
	if err != nil || !ok {
		return nil, false, err
	}
	if r.Owner != p.ID() {
		return nil, false, errors.WithMessagef(ErrDecodeFailure, "%v owned by %v", addr, r.Owner)
	}
	return r.Data, true, nil
}

// Pool reads a committed pool ledger.
func (p *Processor) Pool(ledger *host.Ledger, addr ident.Address) (*PoolLedger, bool, error) {
	return p.loadPool(ledgerGetter{ledger}, addr)
}

// Position reads a committed user position.
func (p *Processor) Position(ledger *host.Ledger, addr ident.Address) (*UserPosition, bool, error) {
	return p.loadPosition(ledgerGetter{ledger}, addr)
}
