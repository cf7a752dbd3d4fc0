// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/host"
	"github.com/vechain/stakepool/ident"
)

// Instruction tags of the token program.
const (
	OpOpen uint8 = iota
	OpMintTo
	OpTransfer
)

var (
	ErrInvalidInstruction = errors.New("invalid token instruction")
	ErrNotEnoughAccounts  = errors.New("not enough accounts")
)

var _ host.Program = (*Service)(nil)

// Process makes the service submittable as a program.
//
//	Open:     payer(s), holding(s,w), mint, owner
//	MintTo:   holding(w); amount
//	Transfer: authority(s), from(w), to(w); amount
func (s *Service) Process(ctx *host.Context, accounts []host.AccountMeta, data []byte) error {
	op, amount, err := decodeInstruction(data)
	if err != nil {
		return err
	}
	need := map[uint8]int{OpOpen: 4, OpMintTo: 1, OpTransfer: 3}[op]
	if len(accounts) < need {
		return errors.WithMessagef(ErrNotEnoughAccounts, "need %d, got %d", need, len(accounts))
	}
	addr := func(i int) ident.Address { return accounts[i].Address }

	switch op {
	case OpOpen:
		return s.Open(ctx, addr(1), addr(2), addr(3), addr(0))
	case OpMintTo:
		return s.MintTo(ctx, addr(0), amount)
	default:
		return s.Transfer(ctx, addr(1), addr(2), addr(0), amount)
	}
}

func decodeInstruction(data []byte) (op uint8, amount uint64, err error) {
	dec := bin.NewBorshDecoder(data)
	if op, err = dec.ReadUint8(); err != nil {
		return 0, 0, errors.WithMessage(ErrInvalidInstruction, err.Error())
	}
	switch op {
	case OpOpen:
	case OpMintTo, OpTransfer:
		if amount, err = dec.ReadUint64(binary.LittleEndian); err != nil {
			return 0, 0, errors.WithMessage(ErrInvalidInstruction, err.Error())
		}
	default:
		return 0, 0, errors.WithMessagef(ErrInvalidInstruction, "unknown tag %d", op)
	}
	if dec.HasRemaining() {
		return 0, 0, errors.WithMessagef(ErrInvalidInstruction, "%d trailing bytes", dec.Remaining())
	}
	return op, amount, nil
}

func encodeInstruction(op uint8, amount uint64) []byte {
	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	_ = enc.WriteUint8(op)
	if op != OpOpen {
		_ = enc.WriteUint64(amount, binary.LittleEndian)
	}
	return buf.Bytes()
}

// OpenRequest builds a request opening a keypair-style holding.
func (s *Service) OpenRequest(payer, holding, mint, owner ident.Address) host.Request {
	return host.Request{
		ProgramID: s.programID,
		Accounts: []host.AccountMeta{
			{Address: payer, Signer: true},
			{Address: holding, Signer: true, Writable: true},
			{Address: mint},
			{Address: owner},
		},
		Data: encodeInstruction(OpOpen, 0),
	}
}

// MintToRequest builds a faucet request.
func (s *Service) MintToRequest(holding ident.Address, amount uint64) host.Request {
	return host.Request{
		ProgramID: s.programID,
		Accounts:  []host.AccountMeta{{Address: holding, Writable: true}},
		Data:      encodeInstruction(OpMintTo, amount),
	}
}

// TransferRequest builds a transfer signed by authority.
func (s *Service) TransferRequest(authority, from, to ident.Address, amount uint64) host.Request {
	return host.Request{
		ProgramID: s.programID,
		Accounts: []host.AccountMeta{
			{Address: authority, Signer: true},
			{Address: from, Writable: true},
			{Address: to, Writable: true},
		},
		Data: encodeInstruction(OpTransfer, amount),
	}
}
