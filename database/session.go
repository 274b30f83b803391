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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/snespatch/snespatch/curated"
	"github.com/spf13/afero"
)

// Activity describes the type of access the session requires.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Session keeps track of a database connection.
type Session struct {
	fs       afero.Fs
	path     string
	activity Activity

	entryTypes map[string]Deserialiser
	entries    map[int]Entry
}

// StartSession starts a new database session for the file at path. The init
// function is called before any entry is deserialised and should register
// every entry type the database may contain.
func StartSession(fs afero.Fs, path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		fs:         fs,
		path:       path,
		activity:   activity,
		entryTypes: make(map[string]Deserialiser),
		entries:    make(map[int]Entry),
	}

	if err := init(db); err != nil {
		return nil, curated.Errorf("database: %v", err)
	}

	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) && activity == ActivityCreating {
			// a database being created has no content to read yet
			return db, nil
		}
		return nil, curated.Errorf("database: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := db.fromRecord(line); err != nil {
			return nil, curated.Errorf("database: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("database: %v", err)
	}

	return db, nil
}

// EndSession closes the database, writing any changes to disk if
// commitChanges is true. The session cannot be used after EndSession() has
// returned.
func (db *Session) EndSession(commitChanges bool) error {
	var err error
	if commitChanges {
		err = db.Sync()
	}
	db.entries = nil
	db.entryTypes = nil
	return err
}

// Sync writes the current state of the database to disk. It is called by
// EndSession() but long-lived sessions can call it directly so that records
// survive an unclean shutdown.
func (db *Session) Sync() error {
	if db.activity == ActivityReading {
		return curated.Errorf("database: cannot sync a read-only session")
	}

	f, err := db.fs.Create(db.path)
	if err != nil {
		return curated.Errorf("database: %v", err)
	}
	defer f.Close()

	for _, key := range db.SortedKeyList() {
		rec, err := db.toRecord(key, db.entries[key])
		if err != nil {
			return curated.Errorf("database: %v", err)
		}
		if _, err := f.WriteString(rec + entrySep); err != nil {
			return curated.Errorf("database: %v", err)
		}
	}

	return nil
}

const fieldSep = ","
const entrySep = "\n"

// toRecord converts an entry to its on-disk representation.
func (db *Session) toRecord(key int, ent Entry) (string, error) {
	ser, err := ent.Serialise()
	if err != nil {
		return "", err
	}

	for _, field := range ser {
		if strings.Contains(field, fieldSep) || strings.Contains(field, entrySep) {
			return "", fmt.Errorf("illegal character in field (%s)", field)
		}
	}

	rec := make([]string, 0, len(ser)+2)
	rec = append(rec, fmt.Sprintf("%03d", key), ent.EntryType())
	rec = append(rec, ser...)

	return strings.Join(rec, fieldSep), nil
}

// fromRecord deserialises one line of the database file.
func (db *Session) fromRecord(line string) error {
	fields := strings.Split(line, fieldSep)
	if len(fields) < 2 {
		return fmt.Errorf("malformed entry (%s)", line)
	}

	key, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("malformed entry key (%s)", fields[0])
	}
	if _, ok := db.entries[key]; ok {
		return fmt.Errorf("duplicate entry key (%03d)", key)
	}

	des, ok := db.entryTypes[fields[1]]
	if !ok {
		return fmt.Errorf("unrecognised entry type (%s)", fields[1])
	}

	ent, err := des(SerialisedEntry(fields[2:]))
	if err != nil {
		return err
	}

	db.entries[key] = ent

	return nil
}
