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

// Package modify is the ROM modification engine. The Engine type owns the
// cartridge image and is the only component that mutates it. Every byte
// change goes through a transaction so that it is attributable to exactly one
// logged operation and so that the whole group of changes can be undone as a
// unit:
//
//	tx, _ := eng.Begin()
//	if err := eng.WriteByte(tx, 0x1000, 0xab, false); err != nil {
//		eng.Rollback(tx)
//		return err
//	}
//	eng.Commit(tx)
//	eng.Save()
//
// Only one transaction can be active at a time. Rollback replays the
// operation log in reverse so that the image returns to its exact
// pre-transaction state, however many times an address was written.
//
// Commit() terminates the transaction but does not touch the disk; Save()
// flushes the image to the file. Until then any other program reading the
// ROM file sees the bytes as they were before the transaction.
//
// Modification patterns bundle several writes with prerequisite checks and
// declared conflicts. A pattern is applied through a single transaction and
// is all-or-nothing: if any of its writes fails validation the transaction is
// rolled back and the image is left untouched.
package modify
