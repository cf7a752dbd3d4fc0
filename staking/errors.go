// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/vechain/stakepool/staking/reverts"

// Codes are stable; append new kinds only.
var (
	ErrInvalidDerivedAddress    = reverts.New(1, "invalid derived address")
	ErrAuthorityMismatch        = reverts.New(2, "custody authority mismatch")
	ErrMissingRequiredSignature = reverts.New(3, "missing required signature")
	ErrInsufficientBalance      = reverts.New(4, "insufficient staked balance")
	ErrDecodeFailure            = reverts.New(5, "decode failure")

	ErrOverflow           = reverts.New(6, "arithmetic overflow")
	ErrUnderflow          = reverts.New(7, "arithmetic underflow")
	ErrNotEnoughAccounts  = reverts.New(8, "not enough accounts")
	ErrIncorrectProgramID = reverts.New(9, "incorrect program id")
	ErrPoolNotInitialized = reverts.New(10, "pool not initialized")
	ErrCustodyMint        = reverts.New(11, "custody holds another asset")
)
