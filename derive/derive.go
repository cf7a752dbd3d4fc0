// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package derive computes program-derived addresses: addresses that are a pure
// function of a seed tuple and a program id, guaranteed to have no private key.
// The bump nonce found alongside the address lets the owning program later prove
// its authority over exactly that seed tuple.
package derive

import (
	"bytes"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/cache"
	"github.com/vechain/stakepool/ident"
)

const (
	// MaxSeeds is the maximum number of seeds, bump included.
	MaxSeeds = solana.MaxSeeds
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = solana.MaxSeedLength
)

var (
	ErrInvalidSeeds     = errors.New("invalid seeds")
	ErrAddressMismatch  = errors.New("derived address mismatch")
	ErrNoViableBumpSeed = errors.New("no viable bump seed")
)

// Authority is a derived address together with the proof needed to sign for it.
type Authority struct {
	Address ident.Address
	Seeds   [][]byte
	Bump    uint8
}

// SignerSeeds returns the seeds with the bump appended.
func (a Authority) SignerSeeds() [][]byte {
	out := make([][]byte, 0, len(a.Seeds)+1)
	out = append(out, a.Seeds...)
	return append(out, []byte{a.Bump})
}

// Verify proves that the authority's address is derived from its seeds and bump
// under the given program.
func (a Authority) Verify(programID ident.Address) error {
	seeds := a.SignerSeeds()
	if err := checkSeeds(len(seeds), seeds); err != nil {
		return err
	}
	addr, err := Create(programID, seeds...)
	if err != nil {
		// the seeds land on the curve under programID
		return errors.WithMessagef(ErrAddressMismatch, "want %v: %v", a.Address, err)
	}
	if addr != a.Address {
		return errors.WithMessagef(ErrAddressMismatch, "want %v, got %v", a.Address, addr)
	}
	return nil
}

// Find searches the bump nonce (255 down to 1) that yields an off-curve address
// for the seeds under the given program.
func Find(programID ident.Address, seeds ...[]byte) (Authority, error) {
	if err := checkSeeds(len(seeds)+1, seeds); err != nil {
		return Authority{}, err
	}
	// FindProgramAddress appends the bump to its argument, owned has no spare capacity
	owned := cloneSeeds(seeds)
	pk, bump, err := solana.FindProgramAddress(owned, programID.PublicKey())
	if err != nil {
		return Authority{}, errors.WithMessage(ErrNoViableBumpSeed, err.Error())
	}
	return Authority{
		Address: ident.FromPublicKey(pk),
		Seeds:   owned,
		Bump:    bump,
	}, nil
}

// Create computes the address for seeds that already carry the bump.
func Create(programID ident.Address, seeds ...[]byte) (ident.Address, error) {
	if err := checkSeeds(len(seeds), seeds); err != nil {
		return ident.Address{}, err
	}
	pk, err := solana.CreateProgramAddress(seeds, programID.PublicKey())
	if err != nil {
		return ident.Address{}, errors.WithMessage(ErrInvalidSeeds, err.Error())
	}
	return ident.FromPublicKey(pk), nil
}

func checkSeeds(n int, seeds [][]byte) error {
	if n > MaxSeeds {
		return errors.WithMessagef(ErrInvalidSeeds, "too many seeds: %d", n)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.WithMessagef(ErrInvalidSeeds, "seed %d too long: %d bytes", i, len(s))
		}
	}
	return nil
}

func cloneSeeds(seeds [][]byte) [][]byte {
	out := make([][]byte, len(seeds))
	for i, s := range seeds {
		out[i] = bytes.Clone(s)
	}
	return out
}

// Deriver binds a program id and memoizes derivations.
type Deriver struct {
	programID ident.Address
	cache     *cache.LRU[ident.Digest, Authority]
}

// NewDeriver creates a deriver for the program. cacheSize <= 0 disables caching.
func NewDeriver(programID ident.Address, cacheSize int) *Deriver {
	d := &Deriver{programID: programID}
	if cacheSize > 0 {
		// only fails on non-positive size
		d.cache, _ = cache.NewLRU[ident.Digest, Authority](cacheSize)
	}
	return d
}

// ProgramID returns the program the deriver derives for.
func (d *Deriver) ProgramID() ident.Address {
	return d.programID
}

// Derive returns the authority for the seeds.
func (d *Deriver) Derive(seeds ...[]byte) (Authority, error) {
	if d.cache == nil {
		return Find(d.programID, seeds...)
	}
	return d.cache.GetOrLoad(ident.Blake2bTuple(seeds...), func(ident.Digest) (Authority, error) {
		return Find(d.programID, seeds...)
	})
}

// CacheStats reports cache hits and misses.
func (d *Deriver) CacheStats() (hit, miss int64) {
	if d.cache == nil {
		return 0, 0
	}
	return d.cache.Stats()
}
