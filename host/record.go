// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package host

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/ident"
)

// Record is a keyed storage record: the owning program plus opaque data.
type Record struct {
	Owner ident.Address
	Data  []byte
}

// Copy returns a deep copy.
func (r *Record) Copy() *Record {
	return &Record{Owner: r.Owner, Data: bytes.Clone(r.Data)}
}

func (r Record) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(r.Owner[:], false); err != nil {
		return err
	}
	return enc.WriteBytes(r.Data, true)
}

func (r *Record) UnmarshalWithDecoder(dec *bin.Decoder) error {
	owner, err := dec.ReadNBytes(ident.AddressLength)
	if err != nil {
		return err
	}
	copy(r.Owner[:], owner)

	n, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return err
	}
	if uint64(n) != uint64(dec.Remaining()) {
		return errors.Errorf("record data length %d, %d bytes remaining", n, dec.Remaining())
	}
	data, err := dec.ReadNBytes(int(n))
	if err != nil {
		return err
	}
	r.Data = bytes.Clone(data)
	return nil
}

func encodeRecord(r *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := bin.NewBorshEncoder(&buf).Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRecord(data []byte) (*Record, error) {
	var r Record
	if err := bin.NewBorshDecoder(data).Decode(&r); err != nil {
		return nil, errors.Wrap(err, "decode record")
	}
	return &r, nil
}
