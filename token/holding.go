// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/ident"
)

// HoldingSize is the encoded size of a Holding.
const HoldingSize = 32 + 32 + 8

// Holding is a balance of one asset kind, controlled by its owner.
type Holding struct {
	Mint   ident.Address `json:"mint"`
	Owner  ident.Address `json:"owner"`
	Amount uint64        `json:"amount"`
}

func (h Holding) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(h.Mint[:], false); err != nil {
		return err
	}
	if err := enc.WriteBytes(h.Owner[:], false); err != nil {
		return err
	}
	return enc.WriteUint64(h.Amount, binary.LittleEndian)
}

func (h *Holding) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	mint, err := dec.ReadNBytes(ident.AddressLength)
	if err != nil {
		return err
	}
	owner, err := dec.ReadNBytes(ident.AddressLength)
	if err != nil {
		return err
	}
	copy(h.Mint[:], mint)
	copy(h.Owner[:], owner)
	h.Amount, err = dec.ReadUint64(binary.LittleEndian)
	return err
}

// Encode returns the fixed-width encoding of h.
func (h *Holding) Encode() []byte {
	var buf bytes.Buffer
	buf.Grow(HoldingSize)
	// writes to a bytes.Buffer never fail
	_ = bin.NewBorshEncoder(&buf).Encode(h)
	return buf.Bytes()
}

// DecodeHolding decodes exactly HoldingSize bytes.
func DecodeHolding(data []byte) (*Holding, error) {
	if len(data) != HoldingSize {
		return nil, errors.Errorf("holding size %d, want %d", len(data), HoldingSize)
	}
	var h Holding
	if err := bin.NewBorshDecoder(data).Decode(&h); err != nil {
		return nil, err
	}
	return &h, nil
}
