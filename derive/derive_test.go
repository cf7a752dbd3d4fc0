// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package derive

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/ident"
)

var (
	program = ident.NameToAddress("program")
	mint    = ident.NameToAddress("mint")
)

func TestFindDeterministic(t *testing.T) {
	a1, err := Find(program, mint.Bytes(), []byte("staking-token"))
	require.NoError(t, err)
	a2, err := Find(program, mint.Bytes(), []byte("staking-token"))
	require.NoError(t, err)
	assert.Equal(t, a1, a2)

	a3, err := Find(program, mint.Bytes(), []byte("rewards-token"))
	require.NoError(t, err)
	assert.NotEqual(t, a1.Address, a3.Address)

	other, err := Find(ident.NameToAddress("other"), mint.Bytes(), []byte("staking-token"))
	require.NoError(t, err)
	assert.NotEqual(t, a1.Address, other.Address)
}

func TestFindMatchesSolana(t *testing.T) {
	seeds := [][]byte{mint.Bytes(), []byte("metadata")}
	want, bump, err := solana.FindProgramAddress(seeds, program.PublicKey())
	require.NoError(t, err)

	auth, err := Find(program, seeds...)
	require.NoError(t, err)
	assert.Equal(t, ident.FromPublicKey(want), auth.Address)
	assert.Equal(t, bump, auth.Bump)
	assert.False(t, solana.IsOnCurve(auth.Address.Bytes()))
}

func TestFindDoesNotAliasSeeds(t *testing.T) {
	seed := []byte("user-state")
	auth, err := Find(program, seed)
	require.NoError(t, err)
	seed[0] = 'X'
	assert.True(t, bytes.Equal([]byte("user-state"), auth.Seeds[0]))
	assert.NoError(t, auth.Verify(program))
}

func TestVerify(t *testing.T) {
	auth, err := Find(program, mint.Bytes(), []byte("rewards-token"))
	require.NoError(t, err)
	assert.NoError(t, auth.Verify(program))

	tampered := auth
	tampered.Bump--
	assert.Error(t, tampered.Verify(program))

	// under other programs the seeds may derive another address or none at all
	for i := range 32 {
		other := ident.NameToAddress(fmt.Sprintf("other-%d", i))
		assert.ErrorIs(t, auth.Verify(other), ErrAddressMismatch, "program %v", other)
	}

	long := Authority{Seeds: [][]byte{make([]byte, MaxSeedLength+1)}}
	assert.ErrorIs(t, long.Verify(program), ErrInvalidSeeds)

	signer := auth.SignerSeeds()
	assert.Len(t, signer, 3)
	assert.Equal(t, []byte{auth.Bump}, signer[2])

	addr, err := Create(program, signer...)
	require.NoError(t, err)
	assert.Equal(t, auth.Address, addr)
}

func TestInvalidSeeds(t *testing.T) {
	_, err := Find(program, make([]byte, MaxSeedLength+1))
	assert.ErrorIs(t, err, ErrInvalidSeeds)

	many := make([][]byte, MaxSeeds)
	_, err = Find(program, many...)
	assert.ErrorIs(t, err, ErrInvalidSeeds)

	_, err = Create(program, make([][]byte, MaxSeeds+1)...)
	assert.ErrorIs(t, err, ErrInvalidSeeds)
}

func TestDeriverCache(t *testing.T) {
	d := NewDeriver(program, 8)
	assert.Equal(t, program, d.ProgramID())

	want, err := Find(program, mint.Bytes(), []byte("staking-token"))
	require.NoError(t, err)

	for range 3 {
		got, err := d.Derive(mint.Bytes(), []byte("staking-token"))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	hit, miss := d.CacheStats()
	assert.Equal(t, int64(2), hit)
	assert.Equal(t, int64(1), miss)

	uncached := NewDeriver(program, 0)
	got, err := uncached.Derive(mint.Bytes(), []byte("staking-token"))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	hit, miss = uncached.CacheStats()
	assert.Zero(t, hit+miss)
}
