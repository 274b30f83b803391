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

package backup

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/snespatch/snespatch/database"
	"github.com/spf13/afero"
)

const recordEntryType = "backup"

const (
	recordFieldID int = iota
	recordFieldOriginalPath
	recordFieldBackupPath
	recordFieldChecksum
	recordFieldCreatedAt
	recordFieldSize
	recordFieldDescription
	numRecordFields
)

// Record describes one backup in the manifest.
type Record struct {
	ID           string
	OriginalPath string
	BackupPath   string

	// SHA-1 over the full snapshot content
	Checksum string

	CreatedAt   time.Time
	Size        int64
	Description string

	// for CleanUp(). set by the manager, both on creation and
	// deserialisation
	fs afero.Fs
}

func deserialiseRecord(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numRecordFields {
		return nil, fmt.Errorf("wrong number of fields in backup entry")
	}

	rec := &Record{
		ID:           fields[recordFieldID],
		OriginalPath: fields[recordFieldOriginalPath],
		BackupPath:   fields[recordFieldBackupPath],
		Checksum:     fields[recordFieldChecksum],
		Description:  fields[recordFieldDescription],
	}

	var err error
	rec.CreatedAt, err = time.Parse(time.RFC3339, fields[recordFieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("bad creation time in backup entry (%s)", fields[recordFieldCreatedAt])
	}
	rec.Size, err = strconv.ParseInt(fields[recordFieldSize], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad size in backup entry (%s)", fields[recordFieldSize])
	}

	return rec, nil
}

// EntryType implements the database.Entry interface.
func (rec *Record) EntryType() string {
	return recordEntryType
}

// Serialise implements the database.Entry interface.
func (rec *Record) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		rec.ID,
		rec.OriginalPath,
		rec.BackupPath,
		rec.Checksum,
		rec.CreatedAt.Format(time.RFC3339),
		strconv.FormatInt(rec.Size, 10),
		// the description is stored in a comma separated file
		strings.NewReplacer(",", ";", "\n", " ").Replace(rec.Description),
	}, nil
}

// CleanUp implements the database.Entry interface. The snapshot file is
// removed along with the manifest entry.
func (rec *Record) CleanUp() error {
	if rec.fs == nil {
		return nil
	}
	return rec.fs.Remove(rec.BackupPath)
}

func (rec *Record) String() string {
	return fmt.Sprintf("%s: %s (%d bytes, %s)", rec.ID, rec.OriginalPath, rec.Size,
		rec.CreatedAt.Format("2006-01-02 15:04:05"))
}
