// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ident

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest is a blake2b-256 checksum.
type Digest [32]byte

func (d Digest) String() string {
	return "0x" + hex.EncodeToString(d[:])
}

// Blake2bTuple hashes a tuple of byte strings, prefixing each with its length,
// so that ("ab","c") and ("a","bc") never collide.
func Blake2bTuple(items ...[]byte) Digest {
	h, _ := blake2b.New256(nil)
	var l [4]byte
	for _, b := range items {
		binary.BigEndian.PutUint32(l[:], uint32(len(b)))
		h.Write(l[:])
		h.Write(b)
	}
	var d Digest
	h.Sum(d[:0])
	return d
}
