// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package host

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownProgram      = errors.New("unknown program")
	ErrNotWritable         = errors.New("record not declared writable")
	ErrRecordNotFound      = errors.New("record not found")
	ErrAlreadyInUse        = errors.New("address already in use")
	ErrMissingSignature    = errors.New("missing required signature")
	ErrUnauthorizedAddress = errors.New("address neither signed nor derived by caller")
)

// Error is the error caused by record store access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("host: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}
