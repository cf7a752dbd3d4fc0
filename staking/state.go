// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/ident"
)

const (
	// PoolLedgerSize is the encoded size of a PoolLedger.
	PoolLedgerSize = 3*ident.AddressLength + 3*8
	// UserPositionSize is the encoded size of a UserPosition.
	UserPositionSize = 3 * 8
)

// PoolLedger is the record of one staking-asset/reward-asset pair.
type PoolLedger struct {
	Admin                ident.Address `json:"admin"`
	StakingAsset         ident.Address `json:"stakingAsset"`
	RewardAsset          ident.Address `json:"rewardAsset"`
	TotalSupply          uint64        `json:"totalSupply"`
	RewardPerTokenStored uint64        `json:"rewardPerTokenStored"`
	LastUpdateTimestamp  int64         `json:"lastUpdateTimestamp"`
}

func (p PoolLedger) MarshalWithEncoder(enc *bin.Encoder) error {
	for _, addr := range []ident.Address{p.Admin, p.StakingAsset, p.RewardAsset} {
		if err := enc.WriteBytes(addr[:], false); err != nil {
			return err
		}
	}
	if err := enc.WriteUint64(p.TotalSupply, binary.LittleEndian); err != nil {
		return err
	}
	if err := enc.WriteUint64(p.RewardPerTokenStored, binary.LittleEndian); err != nil {
		return err
	}
	return enc.WriteInt64(p.LastUpdateTimestamp, binary.LittleEndian)
}

func (p *PoolLedger) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	for _, addr := range []*ident.Address{&p.Admin, &p.StakingAsset, &p.RewardAsset} {
		b, err := dec.ReadNBytes(ident.AddressLength)
		if err != nil {
			return err
		}
		copy(addr[:], b)
	}
	if p.TotalSupply, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if p.RewardPerTokenStored, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	p.LastUpdateTimestamp, err = dec.ReadInt64(binary.LittleEndian)
	return err
}

// UserPosition is the record of one depositor in one pool.
type UserPosition struct {
	Balance            uint64 `json:"balance"`
	RewardPerTokenPaid uint64 `json:"rewardPerTokenPaid"`
	Rewards            uint64 `json:"rewards"`
}

func (u UserPosition) MarshalWithEncoder(enc *bin.Encoder) error {
	for _, v := range []uint64{u.Balance, u.RewardPerTokenPaid, u.Rewards} {
		if err := enc.WriteUint64(v, binary.LittleEndian); err != nil {
			return err
		}
	}
	return nil
}

func (u *UserPosition) UnmarshalWithDecoder(dec *bin.Decoder) error {
	for _, v := range []*uint64{&u.Balance, &u.RewardPerTokenPaid, &u.Rewards} {
		n, err := dec.ReadUint64(binary.LittleEndian)
		if err != nil {
			return err
		}
		*v = n
	}
	return nil
}

// EncodePoolLedger returns the fixed-width encoding of p.
func EncodePoolLedger(p *PoolLedger) []byte {
	return encode(p, PoolLedgerSize)
}

// DecodePoolLedger decodes exactly PoolLedgerSize bytes.
func DecodePoolLedger(data []byte) (*PoolLedger, error) {
	var p PoolLedger
	if err := decode(data, PoolLedgerSize, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// EncodeUserPosition returns the fixed-width encoding of u.
func EncodeUserPosition(u *UserPosition) []byte {
	return encode(u, UserPositionSize)
}

// DecodeUserPosition decodes exactly UserPositionSize bytes.
func DecodeUserPosition(data []byte) (*UserPosition, error) {
	var u UserPosition
	if err := decode(data, UserPositionSize, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func encode(v bin.BinaryMarshaler, size int) []byte {
	var buf bytes.Buffer
	buf.Grow(size)
	// writes to a bytes.Buffer never fail
	_ = bin.NewBorshEncoder(&buf).Encode(v)
	return buf.Bytes()
}

func decode(data []byte, size int, v bin.BinaryUnmarshaler) error {
	if len(data) != size {
		return errors.WithMessagef(ErrDecodeFailure, "record size %d, want %d", len(data), size)
	}
	if err := bin.NewBorshDecoder(data).Decode(v); err != nil {
		return errors.WithMessage(ErrDecodeFailure, err.Error())
	}
	return nil
}
