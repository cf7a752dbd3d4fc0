// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/token"
)

// VerifyCustodyOwner asserts that the custody holding is owned by the expected
// derived authority.
func VerifyCustodyOwner(custody *token.Holding, expectedAuthority ident.Address) error {
	if custody.Owner != expectedAuthority {
		return errors.WithMessagef(ErrAuthorityMismatch, "owner %v, want %v", custody.Owner, expectedAuthority)
	}
	return nil
}

// verifyCustody checks ownership and that the custody holds the expected asset.
func verifyCustody(custody *token.Holding, expectedAuthority, asset ident.Address) error {
	if err := VerifyCustodyOwner(custody, expectedAuthority); err != nil {
		return err
	}
	if custody.Mint != asset {
		return errors.WithMessagef(ErrCustodyMint, "holds %v, want %v", custody.Mint, asset)
	}
	return nil
}
