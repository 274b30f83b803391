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

	"github.com/snespatch/snespatch/address"
	"github.com/snespatch/snespatch/backup"
	"github.com/snespatch/snespatch/cartridge"
	"github.com/snespatch/snespatch/curated"
	"github.com/snespatch/snespatch/discovery"
	"github.com/spf13/afero"
)

// Engine is the modification engine facade. It owns the cartridge image;
// every mutation of the image goes through the engine.
type Engine struct {
	fs  afero.Fs
	img *cartridge.Image

	ranges  Ranges
	tr      transactor
	backups *backup.Manager

	patterns map[string]Pattern

	// patterns currently applied to the image, with the operations recorded
	// when they were applied (needed for RevertPattern)
	applied map[string][]Operation
}

// NewEngine is the preferred method of initialisation for the Engine type.
// The engine takes exclusive ownership of the image.
func NewEngine(fs afero.Fs, img *cartridge.Image, ranges Ranges) (*Engine, error) {
	backups, err := backup.NewManager(fs)
	if err != nil {
		return nil, curated.Errorf("engine: %v", err)
	}

	return &Engine{
		fs:       fs,
		img:      img,
		ranges:   ranges,
		tr:       transactor{img: img},
		backups:  backups,
		patterns: make(map[string]Pattern),
		applied:  make(map[string][]Operation),
	}, nil
}

// Image returns the cartridge image owned by the engine. For read-only
// collaborators (checksum tooling etc).
func (e *Engine) Image() *cartridge.Image {
	return e.img
}

// Backups returns the engine's backup manager.
func (e *Engine) Backups() *backup.Manager {
	return e.backups
}

// ReadByte returns the byte at the specified offset. Reads are bounds-checked
// but are not constrained by the range configuration and do not need a
// transaction.
func (e *Engine) ReadByte(o address.FileOffset) (uint8, error) {
	if err := e.ranges.Check(o, AccessRead, 1, false, e.img.Size()); err != nil {
		return 0, err
	}
	return e.img.Read8(o)
}

// Begin a new transaction. Fails with TransactionInProgress if another
// transaction is active: the image has a single writer.
func (e *Engine) Begin() (*Transaction, error) {
	return e.tr.begin()
}

// WriteByte validates the write against the range configuration and records
// it in the transaction. The write is applied to the image immediately; it
// reaches the file on disk when the transaction is committed and the image
// saved.
func (e *Engine) WriteByte(tx *Transaction, o address.FileOffset, v uint8, confirmed bool) error {
	if err := e.ranges.Check(o, AccessWrite, 1, confirmed, e.img.Size()); err != nil {
		return err
	}
	return e.tr.recordWrite(tx, o, v)
}

// Commit terminates the transaction. The image already reflects every write
// in the transaction; call Save() to persist it.
func (e *Engine) Commit(tx *Transaction) error {
	return e.tr.commit(tx)
}

// Rollback terminates the transaction, undoing its operations in reverse
// order. Afterwards every address the transaction touched holds the value it
// had before Begin().
func (e *Engine) Rollback(tx *Transaction) error {
	return e.tr.rollback(tx)
}

// Save flushes the image to the file it was loaded from. Until Save returns,
// external readers of the file see the bytes as they were before any
// committed transaction.
func (e *Engine) Save() error {
	return e.img.Save(e.fs)
}

// CreateBackup snapshots the image to the backup store.
func (e *Engine) CreateBackup(description string) (backup.Record, error) {
	return e.backups.Create(e.img, description)
}

// RestoreFromBackup replaces the image content with a checksum-verified
// backup. An active transaction at the time of the restore no longer
// describes the image, so it is invalidated and treated as failed.
func (e *Engine) RestoreFromBackup(id string) error {
	if err := e.backups.Restore(e.img, id); err != nil {
		return err
	}
	e.tr.invalidate()
	return nil
}

// AllowFromDiscovery adds a discovery record to the allowed ranges. The
// record's bounds are re-validated against the image; the discovery database
// is a hint, not an authority.
func (e *Engine) AllowFromDiscovery(rec discovery.Record) error {
	r, err := e.rangeFromDiscovery(rec)
	if err != nil {
		return err
	}
	e.ranges.Allowed = append(e.ranges.Allowed, r)
	return nil
}

// ConfirmFromDiscovery adds a discovery record to the confirmation-required
// ranges, with the same bounds re-validation as AllowFromDiscovery.
func (e *Engine) ConfirmFromDiscovery(rec discovery.Record) error {
	r, err := e.rangeFromDiscovery(rec)
	if err != nil {
		return err
	}
	e.ranges.Confirm = append(e.ranges.Confirm, r)
	return nil
}

func (e *Engine) rangeFromDiscovery(rec discovery.Record) (Range, error) {
	if rec.Size < 1 || int(rec.Address)+rec.Size > e.img.Size() {
		return Range{}, curated.Errorf(address.OutOfRange,
			fmt.Sprintf("discovery record %s does not fit ROM size %#06x", rec, e.img.Size()))
	}
	return Range{
		Start:  rec.Address,
		End:    rec.Address + address.FileOffset(rec.Size) - 1,
		Reason: fmt.Sprintf("discovery: %s", rec.Name),
	}, nil
}
