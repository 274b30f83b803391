// This file is part of snespatch.
//
// snespatch is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// snespatch is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with snespatch.  If not, see <https://www.gnu.org/licenses/>.

package modify

import (
	"fmt"
	"time"

	"github.com/snespatch/snespatch/address"
	"github.com/snespatch/snespatch/cartridge"
	"github.com/snespatch/snespatch/curated"
	"github.com/snespatch/snespatch/logger"
)

// Error patterns raised by transaction handling.
const (
	// an operation was attempted against a transaction that has been
	// committed, rolled back or invalidated
	TransactionNotActive = "transaction: not active: %s"

	// Begin() while another transaction is active. the operation logs of two
	// interleaved transactions could not be rolled back meaningfully
	TransactionInProgress = "transaction: already in progress: %s"
)

// Operation is one logged byte write. Immutable once recorded.
type Operation struct {
	Address  address.FileOffset
	Original uint8
	New      uint8
}

func (op Operation) String() string {
	return fmt.Sprintf("%s: %#02x -> %#02x", op.Address, op.Original, op.New)
}

type txState int

const (
	txActive txState = iota
	txCommitted
	txRolledBack

	// a restore from backup replaced the buffer underneath the transaction.
	// the operation log no longer describes the buffer so the transaction is
	// failed without replaying anything
	txInvalidated
)

func (s txState) String() string {
	switch s {
	case txActive:
		return "active"
	case txCommitted:
		return "committed"
	case txRolledBack:
		return "rolled back"
	case txInvalidated:
		return "invalidated"
	}
	return "unknown state"
}

// Transaction is an ordered log of byte writes against the image. It is
// created with Engine.Begin() and terminated exactly once, with
// Engine.Commit() or Engine.Rollback(). A terminated transaction cannot be
// reused.
type Transaction struct {
	ID        string
	CreatedAt time.Time

	ops   []Operation
	state txState
}

func (tx *Transaction) String() string {
	return fmt.Sprintf("transaction %s (%s, %d operations)", tx.ID, tx.state, len(tx.ops))
}

// IsActive returns true if the transaction is still accepting operations.
func (tx *Transaction) IsActive() bool {
	return tx.state == txActive
}

// Operations returns a copy of the operation log in the order the operations
// were recorded.
func (tx *Transaction) Operations() []Operation {
	ops := make([]Operation, len(tx.ops))
	copy(ops, tx.ops)
	return ops
}

// transactor enforces the single-writer rule for the image and moves
// transactions through their lifecycle.
type transactor struct {
	img    *cartridge.Image
	active *Transaction
	seq    int
}

// begin a new transaction. Fails if another transaction is active.
func (tr *transactor) begin() (*Transaction, error) {
	if tr.active != nil && tr.active.IsActive() {
		return nil, curated.Errorf(TransactionInProgress, tr.active.String())
	}

	tr.seq++
	tx := &Transaction{
		ID:        fmt.Sprintf("tx%04d", tr.seq),
		CreatedAt: time.Now(),
	}
	tr.active = tx

	return tx, nil
}

// recordWrite reads the current byte at the address as the operation's
// original value, applies the new value to the image immediately and appends
// the operation to the transaction log. Within the transaction, a read of the
// address returns the new value.
func (tr *transactor) recordWrite(tx *Transaction, o address.FileOffset, v uint8) error {
	if tx != tr.active || !tx.IsActive() {
		return curated.Errorf(TransactionNotActive,
			fmt.Sprintf("%s rejected by %s", o, tx))
	}

	orig, err := tr.img.Read8(o)
	if err != nil {
		return err
	}
	if err := tr.img.Write8(o, v); err != nil {
		return err
	}

	tx.ops = append(tx.ops, Operation{Address: o, Original: orig, New: v})

	return nil
}

// commit marks the transaction terminated. The image already reflects every
// recorded operation so there is nothing to apply; persisting the image to
// disk is a separate step.
func (tr *transactor) commit(tx *Transaction) error {
	if tx != tr.active || !tx.IsActive() {
		return curated.Errorf(TransactionNotActive, tx.String())
	}

	tx.state = txCommitted
	tr.active = nil
	logger.Logf("transaction", "%s committed (%d operations)", tx.ID, len(tx.ops))

	return nil
}

// rollback replays the operation log in reverse order, restoring each
// operation's original value. Reverse order matters: a later operation may
// have overwritten the same address as an earlier one and the earliest
// original value must win.
func (tr *transactor) rollback(tx *Transaction) error {
	if tx != tr.active || !tx.IsActive() {
		return curated.Errorf(TransactionNotActive, tx.String())
	}

	for i := len(tx.ops) - 1; i >= 0; i-- {
		if err := tr.img.Write8(tx.ops[i].Address, tx.ops[i].Original); err != nil {
			// cannot happen: the operation was recorded against the same
			// fixed-length image
			return err
		}
	}

	tx.state = txRolledBack
	tr.active = nil
	logger.Logf("transaction", "%s rolled back (%d operations)", tx.ID, len(tx.ops))

	return nil
}

// invalidate fails the active transaction, if there is one, without touching
// the image.
func (tr *transactor) invalidate() {
	if tr.active != nil && tr.active.IsActive() {
		logger.Logf("transaction", "%s invalidated", tr.active.ID)
		tr.active.state = txInvalidated
		tr.active = nil
	}
}
