// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token owns holdings and moves value between them.
package token

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/host"
	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/log"
)

var logger = log.WithContext("pkg", "token")

var (
	ErrInvalidHolding    = errors.New("invalid holding")
	ErrOwnerMismatch     = errors.New("holding owner mismatch")
	ErrMintMismatch      = errors.New("holding mint mismatch")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnauthorized      = errors.New("transfer authority did not sign")
	ErrAmountOverflow    = errors.New("holding amount overflow")
)

// Service implements holdings on the host ledger.
type Service struct {
	programID ident.Address
}

// New creates the service with its program id.
func New(programID ident.Address) *Service {
	return &Service{programID: programID}
}

// ID returns the program id. Holdings are owned by it.
func (s *Service) ID() ident.Address {
	return s.programID
}

// Open creates an empty holding of mint for owner at addr. addr must have
// signed, or be derived from seeds by the invoked program.
func (s *Service) Open(ctx *host.Context, addr, mint, owner, payer ident.Address, seeds ...[]byte) error {
	if err := ctx.Allocate(addr, HoldingSize, s.programID, payer, seeds...); err != nil {
		return err
	}
	h := &Holding{Mint: mint, Owner: owner}
	if err := ctx.Put(addr, h.Encode()); err != nil {
		return err
	}
	logger.Debug("opened holding", "holding", addr, "mint", mint, "owner", owner)
	return nil
}

// Holding loads the holding at addr.
func (s *Service) Holding(ctx *host.Context, addr ident.Address) (*Holding, error) {
	r, ok, err := ctx.Get(addr)
	if err != nil {
		return nil, err
	}
	return s.decode(addr, r, ok)
}

// HoldingAt loads a committed holding outside invocations.
func (s *Service) HoldingAt(ledger *host.Ledger, addr ident.Address) (*Holding, error) {
	r, ok, err := ledger.Record(addr)
	if err != nil {
		return nil, err
	}
	return s.decode(addr, r, ok)
}

func (s *Service) decode(addr ident.Address, r *host.Record, ok bool) (*Holding, error) {
	if !ok {
		return nil, errors.WithMessagef(ErrInvalidHolding, "%v: not found", addr)
	}
	if r.Owner != s.programID {
		return nil, errors.WithMessagef(ErrInvalidHolding, "%v: owned by %v", addr, r.Owner)
	}
	h, err := DecodeHolding(r.Data)
	if err != nil {
		return nil, errors.WithMessagef(ErrInvalidHolding, "%v: %v", addr, err)
	}
	return h, nil
}

// MintTo credits amount to the holding. It is a development faucet.
func (s *Service) MintTo(ctx *host.Context, addr ident.Address, amount uint64) error {
	h, err := s.Holding(ctx, addr)
	if err != nil {
		return err
	}
	sum, overflow := math.SafeAdd(h.Amount, amount)
	if overflow {
		return ErrAmountOverflow
	}
	h.Amount = sum
	return ctx.Put(addr, h.Encode())
}

// Transfer moves amount from one holding to another. The authority must own
// the source holding and must either have signed or be proven by seeds (bump
// included) under the invoked program. A zero amount is validated but writes
// nothing.
func (s *Service) Transfer(ctx *host.Context, from, to, authority ident.Address, amount uint64, seeds ...[]byte) error {
	if !ctx.Authorized(authority, seeds...) {
		return errors.WithMessagef(ErrUnauthorized, "%v", authority)
	}
	src, err := s.Holding(ctx, from)
	if err != nil {
		return err
	}
	dst, err := s.Holding(ctx, to)
	if err != nil {
		return err
	}
	if src.Owner != authority {
		return errors.WithMessagef(ErrOwnerMismatch, "holding %v owned by %v, not %v", from, src.Owner, authority)
	}
	if src.Mint != dst.Mint {
		return errors.WithMessagef(ErrMintMismatch, "%v -> %v", src.Mint, dst.Mint)
	}
	if amount == 0 || from == to {
		return nil
	}
	if src.Amount < amount {
		return errors.WithMessagef(ErrInsufficientFunds, "have %d, want %d", src.Amount, amount)
	}
	sum, overflow := math.SafeAdd(dst.Amount, amount)
	if overflow {
		return ErrAmountOverflow
	}
	src.Amount -= amount
	dst.Amount = sum

	if err := ctx.Put(from, src.Encode()); err != nil {
		return err
	}
	if err := ctx.Put(to, dst.Encode()); err != nil {
		return err
	}
	logger.Debug("transferred", "from", from, "to", to, "amount", amount)
	return nil
}
