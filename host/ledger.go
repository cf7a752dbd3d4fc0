// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package host is the ledger that programs run on. It keeps records keyed by
// address, runs one invocation at a time and commits each invocation's writes
// atomically, or none of them.
package host

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/metrics"
)

// recordBucket is the kv prefix of records.
const recordBucket = kv.Bucket("r")

var (
	logger = log.WithContext("pkg", "host")

	metricInvocations = metrics.NewCounter("host_invocations_count", "program invocations by outcome", "program", "status")
)

// AllocatorID is the address requests name when they may allocate records.
var AllocatorID = ident.NameToAddress("allocator")

// Clock returns the current unix time in seconds.
type Clock func() int64

// SystemClock reads the wall clock.
func SystemClock() int64 {
	return time.Now().Unix()
}

// AccountMeta declares how a request uses an address.
type AccountMeta struct {
	Address  ident.Address
	Signer   bool
	Writable bool
}

// Request is a program invocation.
type Request struct {
	ProgramID ident.Address
	Accounts  []AccountMeta
	Data      []byte
}

// Program processes requests addressed to its id.
type Program interface {
	ID() ident.Address
	Process(ctx *Context, accounts []AccountMeta, data []byte) error
}

// Ledger keeps records and runs invocations.
type Ledger struct {
	mu       sync.Mutex
	store    kv.Store
	clock    Clock
	programs map[ident.Address]Program
}

// New creates a ledger over the store. A nil clock means SystemClock.
func New(store kv.Store, clock Clock) *Ledger {
	if clock == nil {
		clock = SystemClock
	}
	return &Ledger{
		store:    recordBucket.NewStore(store),
		clock:    clock,
		programs: make(map[ident.Address]Program),
	}
}

// Register makes the program reachable through Submit.
func (l *Ledger) Register(p Program) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.programs[p.ID()] = p
}

// Submit dispatches the request to its program.
func (l *Ledger) Submit(req Request) error {
	l.mu.Lock()
	p, ok := l.programs[req.ProgramID]
	l.mu.Unlock()
	if !ok {
		return errors.WithMessagef(ErrUnknownProgram, "%v", req.ProgramID)
	}
	return l.Invoke(req.ProgramID, req.Accounts, func(ctx *Context) error {
		return p.Process(ctx, req.Accounts, req.Data)
	})
}

// Invoke runs fn as the given program, with the declared accounts. Writes made
// through the context are committed in one batch if fn returns nil, and
// discarded otherwise.
func (l *Ledger) Invoke(programID ident.Address, accounts []AccountMeta, fn func(ctx *Context) error) (err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		metricInvocations().Add(1, metrics.Labels{"program": programID.String(), "status": status})
	}()

	ctx := newContext(l, programID, l.clock(), accounts)
	if err := fn(ctx); err != nil {
		logger.Debug("invocation reverted", "program", programID, "error", err)
		return err
	}
	return l.commit(ctx)
}

func (l *Ledger) commit(ctx *Context) error {
	batch := l.store.NewBatch()
	var err error
	ctx.writes.Changes(func(addr ident.Address, r *Record) bool {
		var data []byte
		if data, err = encodeRecord(r); err != nil {
			return false
		}
		err = batch.Put(addr.Bytes(), data)
		return err == nil
	})
	if err != nil {
		return &Error{err}
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := batch.Write(); err != nil {
		return &Error{errors.Wrap(err, "commit")}
	}
	logger.Trace("committed", "program", ctx.programID, "writes", batch.Len())
	return nil
}

// Record returns the committed record at addr. The second return value reports
// whether it exists.
func (l *Ledger) Record(addr ident.Address) (*Record, bool, error) {
	return l.load(addr)
}

func (l *Ledger) load(addr ident.Address) (*Record, bool, error) {
	data, err := l.store.Get(addr.Bytes())
	if err != nil {
		if l.store.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, &Error{err}
	}
	r, err := decodeRecord(data)
	if err != nil {
		return nil, false, &Error{err}
	}
	return r, true, nil
}
