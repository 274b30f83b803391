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

import "github.com/snespatch/snespatch/curated"

// Deserialiser is the initialisation function called when the session
// encounters an entry of a registered type.
type Deserialiser func(fields SerialisedEntry) (Entry, error)

// SerialisedEntry is the Entry data represented as an array of strings.
type SerialisedEntry []string

// Entry represents a generic entry in the database.
type Entry interface {
	// EntryType identifies the entry type in the database
	EntryType() string

	// String returns information about the entry in a human readable format.
	// the machine readable representation is returned by Serialise()
	String() string

	// Serialise returns the Entry as an instance of SerialisedEntry
	Serialise() (SerialisedEntry, error)

	// CleanUp is called when the entry is deleted from the database. any
	// external resources the entry refers to should be removed here
	CleanUp() error
}

// RegisterEntryType tells the database what entries to expect and what to do
// when it encounters one.
func (db *Session) RegisterEntryType(id string, des Deserialiser) error {
	if _, ok := db.entryTypes[id]; ok {
		return curated.Errorf("database: duplicate entry type (%s)", id)
	}
	db.entryTypes[id] = des
	return nil
}
