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

package database

import (
	"fmt"
	"io"
	"sort"

	"github.com/snespatch/snespatch/curated"
)

// arbitrary maximum number of entries.
const maxEntries = 1000

// NumEntries returns the number of entries in the database.
func (db *Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns a sorted list of database keys.
func (db *Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	sort.Ints(keyList)
	return keyList
}

// List the entries in key order.
func (db *Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		_, err := io.WriteString(output, "database is empty\n")
		return err
	}

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]
		if _, err := fmt.Fprintf(output, "%03d %s\n", key, ent.String()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(output, "Total: %d\n", db.NumEntries())
	return err
}

// Add an entry to the db. Returns the key assigned to the entry.
func (db *Session) Add(ent Entry) (int, error) {
	if _, ok := db.entryTypes[ent.EntryType()]; !ok {
		return 0, curated.Errorf("database: unrecognised entry type (%s)", ent.EntryType())
	}

	// find spare key
	var key int
	for key = 0; key < maxEntries; key++ {
		if _, ok := db.entries[key]; !ok {
			break
		}
	}
	if key == maxEntries {
		return 0, curated.Errorf("database: maximum entries exceeded (max %d)", maxEntries)
	}

	db.entries[key] = ent

	return key, nil
}

// Delete the entry with the specified key.
func (db *Session) Delete(key int) error {
	ent, ok := db.entries[key]
	if !ok {
		return curated.Errorf("database: key not available (%03d)", key)
	}

	if err := ent.CleanUp(); err != nil {
		return curated.Errorf("database: %v", err)
	}

	delete(db.entries, key)

	return nil
}

// SelectAll calls onSelect for every entry in the database, in key order.
// Selection stops at the first error, which is returned along with the entry
// being visited at the time.
func (db *Session) SelectAll(onSelect func(key int, ent Entry) error) (Entry, error) {
	var entry Entry

	if onSelect == nil {
		onSelect = func(_ int, _ Entry) error { return nil }
	}

	for _, key := range db.SortedKeyList() {
		entry = db.entries[key]
		if err := onSelect(key, entry); err != nil {
			return entry, err
		}
	}

	return entry, nil
}
