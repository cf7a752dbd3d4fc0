// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package host

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/changeset"
	"github.com/vechain/stakepool/derive"
	"github.com/vechain/stakepool/ident"
)

// Context is the view of the ledger during one invocation.
// Reads see the invocation's own writes. It must not outlive the invocation.
type Context struct {
	ledger    *Ledger
	programID ident.Address
	now       int64
	accounts  map[ident.Address]AccountMeta
	writes    *changeset.Set[ident.Address, *Record]
}

func newContext(l *Ledger, programID ident.Address, now int64, metas []AccountMeta) *Context {
	accounts := make(map[ident.Address]AccountMeta, len(metas))
	for _, m := range metas {
		// repeated addresses merge their flags
		prev := accounts[m.Address]
		accounts[m.Address] = AccountMeta{
			Address:  m.Address,
			Signer:   prev.Signer || m.Signer,
			Writable: prev.Writable || m.Writable,
		}
	}
	ctx := &Context{
		ledger:    l,
		programID: programID,
		now:       now,
		accounts:  accounts,
	}
	ctx.writes = changeset.New(l.load)
	return ctx
}

// Now returns the invocation time in unix seconds.
func (c *Context) Now() int64 {
	return c.now
}

// ProgramID returns the program being invoked.
func (c *Context) ProgramID() ident.Address {
	return c.programID
}

// IsSigner reports whether addr was declared as a signer.
func (c *Context) IsSigner(addr ident.Address) bool {
	return c.accounts[addr].Signer
}

// IsWritable reports whether addr was declared writable.
func (c *Context) IsWritable(addr ident.Address) bool {
	return c.accounts[addr].Writable
}

// Authorized reports whether addr signed the request, or is derived from
// seeds (bump included) under the invoked program.
func (c *Context) Authorized(addr ident.Address, seeds ...[]byte) bool {
	if c.IsSigner(addr) {
		return true
	}
	if len(seeds) == 0 {
		return false
	}
	derived, err := derive.Create(c.programID, seeds...)
	return err == nil && derived == addr
}

// Get returns a copy of the record at addr. The second return value reports
// whether it exists.
func (c *Context) Get(addr ident.Address) (*Record, bool, error) {
	r, ok, err := c.writes.Get(addr)
	if err != nil || !ok {
		return nil, false, err
	}
	return r.Copy(), true, nil
}

// Put replaces the data of an existing record.
func (c *Context) Put(addr ident.Address, data []byte) error {
	if !c.IsWritable(addr) {
		return errors.WithMessagef(ErrNotWritable, "%v", addr)
	}
	r, ok, err := c.writes.Get(addr)
	if err != nil {
		return err
	}
	if !ok {
		return errors.WithMessagef(ErrRecordNotFound, "%v", addr)
	}
	c.writes.Put(addr, &Record{Owner: r.Owner, Data: append([]byte(nil), data...)})
	return nil
}

// Allocate creates a zeroed record of size bytes at addr, owned by owner.
// The payer must have signed, and addr must either have signed or be derived
// from seeds under the invoked program.
func (c *Context) Allocate(addr ident.Address, size int, owner, payer ident.Address, seeds ...[]byte) error {
	_, exists, err := c.writes.Get(addr)
	if err != nil {
		return err
	}
	if exists {
		return errors.WithMessagef(ErrAlreadyInUse, "%v", addr)
	}
	if !c.IsSigner(payer) {
		return errors.WithMessagef(ErrMissingSignature, "payer %v", payer)
	}
	if !c.Authorized(addr, seeds...) {
		return errors.WithMessagef(ErrUnauthorizedAddress, "%v", addr)
	}
	if !c.IsWritable(addr) {
		return errors.WithMessagef(ErrNotWritable, "%v", addr)
	}
	c.writes.Put(addr, &Record{Owner: owner, Data: make([]byte, size)})
	return nil
}
