// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines domain failures of the staking program. A failed
// operation commits nothing and may be resubmitted.
package reverts

import "errors"

// Error is a numbered failure kind. Values are compared by identity, so
// declare each kind once.
type Error struct {
	Code    uint32
	message string
}

func New(code uint32, message string) *Error {
	return &Error{Code: code, message: message}
}

func (e *Error) Error() string { return e.message }

// CodeOf returns the code of the first revert in err's chain.
func CodeOf(err error) (uint32, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
