// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"
)

// Kind tags an operation.
type Kind uint8

const (
	KindInitialize Kind = iota
	KindStake
	KindUnstake
	KindClaimRewards
)

func (k Kind) String() string {
	switch k {
	case KindInitialize:
		return "initialize"
	case KindStake:
		return "stake"
	case KindUnstake:
		return "unstake"
	case KindClaimRewards:
		return "claim"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) hasAmount() bool {
	return k == KindStake || k == KindUnstake
}

// Instruction is a decoded request payload.
type Instruction struct {
	Kind   Kind
	Amount uint64
}

func (ins Instruction) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint8(uint8(ins.Kind)); err != nil {
		return err
	}
	if ins.Kind.hasAmount() {
		return enc.WriteUint64(ins.Amount, binary.LittleEndian)
	}
	return nil
}

func (ins *Instruction) UnmarshalWithDecoder(dec *bin.Decoder) error {
	tag, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	ins.Kind = Kind(tag)
	switch ins.Kind {
	case KindInitialize, KindClaimRewards:
		ins.Amount = 0
		return nil
	case KindStake, KindUnstake:
		ins.Amount, err = dec.ReadUint64(binary.LittleEndian)
		return err
	default:
		return errors.Errorf("unknown tag %d", tag)
	}
}

// Encode returns the wire form of the instruction.
func (ins Instruction) Encode() []byte {
	var buf bytes.Buffer
	// writes to a bytes.Buffer never fail
	_ = bin.NewBorshEncoder(&buf).Encode(ins)
	return buf.Bytes()
}

// DecodeInstruction decodes a request payload. Trailing bytes are rejected.
func DecodeInstruction(data []byte) (Instruction, error) {
	var ins Instruction
	dec := bin.NewBorshDecoder(data)
	if err := dec.Decode(&ins); err != nil {
		return Instruction{}, errors.WithMessage(ErrDecodeFailure, err.Error())
	}
	if dec.HasRemaining() {
		return Instruction{}, errors.WithMessagef(ErrDecodeFailure, "%d trailing bytes", dec.Remaining())
	}
	return ins, nil
}
