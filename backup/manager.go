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
	"crypto/sha1"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/snespatch/snespatch/cartridge"
	"github.com/snespatch/snespatch/curated"
	"github.com/snespatch/snespatch/database"
	"github.com/snespatch/snespatch/logger"
	"github.com/snespatch/snespatch/resources"
	"github.com/spf13/afero"
)

// Error patterns raised by the backup manager.
const (
	// a snapshot's checksum does not match the manifest. the snapshot is
	// never applied
	IntegrityFailure = "backup: integrity failure: %s"

	// no backup with the requested id exists in the manifest
	NotFound = "backup: not found: %s"
)

const backupsDir = "backups"
const manifestFile = "manifest.db"

// Manager keeps whole-image snapshots and the manifest describing them.
type Manager struct {
	fs  afero.Fs
	dir string
	db  *database.Session

	// manifest entries by backup id, with the database key needed for
	// deletion
	records map[string]*Record
	keys    map[string]int
}

// NewManager is the preferred method of initialisation for the Manager type.
// The manifest is read from disk, so backups created by earlier runs of the
// program are available.
func NewManager(fs afero.Fs) (*Manager, error) {
	m := &Manager{
		fs:      fs,
		records: make(map[string]*Record),
		keys:    make(map[string]int),
	}

	manifest, err := resources.JoinPath(fs, backupsDir, manifestFile)
	if err != nil {
		return nil, curated.Errorf("backup: %v", err)
	}
	m.dir = filepath.Dir(manifest)

	m.db, err = database.StartSession(fs, manifest, database.ActivityCreating, func(db *database.Session) error {
		return db.RegisterEntryType(recordEntryType, deserialiseRecord)
	})
	if err != nil {
		return nil, curated.Errorf("backup: %v", err)
	}

	_, err = m.db.SelectAll(func(key int, ent database.Entry) error {
		rec, ok := ent.(*Record)
		if !ok {
			return fmt.Errorf("unexpected entry type in manifest")
		}
		rec.fs = fs
		m.records[rec.ID] = rec
		m.keys[rec.ID] = key
		return nil
	})
	if err != nil {
		return nil, curated.Errorf("backup: %v", err)
	}

	return m, nil
}

// Create snapshots the image, copier header included, to a new backup file.
// Either a complete, checksum-verified backup exists when Create returns, or
// none does.
func (m *Manager) Create(img *cartridge.Image, description string) (Record, error) {
	content := img.FileBytes()
	sum := fmt.Sprintf("%x", sha1.Sum(content))

	id := m.uniqueID(sum)
	path := filepath.Join(m.dir, id+".bak")
	tmp := path + ".tmp"

	if err := afero.WriteFile(m.fs, tmp, content, 0644); err != nil {
		m.fs.Remove(tmp)
		return Record{}, curated.Errorf("backup: %v", err)
	}

	// read the snapshot back and verify before it is named a backup
	b, err := afero.ReadFile(m.fs, tmp)
	if err == nil && fmt.Sprintf("%x", sha1.Sum(b)) != sum {
		err = fmt.Errorf("snapshot does not verify after writing")
	}
	if err == nil {
		err = m.fs.Rename(tmp, path)
	}
	if err != nil {
		m.fs.Remove(tmp)
		return Record{}, curated.Errorf("backup: %v", err)
	}

	rec := &Record{
		ID:           id,
		OriginalPath: img.Filename,
		BackupPath:   path,
		Checksum:     sum,
		CreatedAt:    time.Now(),
		Size:         int64(len(content)),
		Description:  description,
		fs:           m.fs,
	}

	key, err := m.db.Add(rec)
	if err == nil {
		err = m.db.Sync()
	}
	if err != nil {
		m.fs.Remove(path)
		return Record{}, curated.Errorf("backup: %v", err)
	}

	m.records[id] = rec
	m.keys[id] = key
	logger.Logf("backup", "created %s (%d bytes)", id, rec.Size)

	return *rec, nil
}

// Restore replaces the image content with the named backup. The snapshot is
// read and verified in full before the image is touched; a backup that
// cannot be verified leaves the image exactly as it was.
func (m *Manager) Restore(img *cartridge.Image, id string) error {
	rec, ok := m.records[id]
	if !ok {
		return curated.Errorf(NotFound, id)
	}

	b, err := afero.ReadFile(m.fs, rec.BackupPath)
	if err != nil {
		return curated.Errorf("backup: %v", err)
	}

	if int64(len(b)) != rec.Size {
		return curated.Errorf(IntegrityFailure,
			fmt.Sprintf("%s is %d bytes, manifest says %d", id, len(b), rec.Size))
	}
	if sum := fmt.Sprintf("%x", sha1.Sum(b)); sum != rec.Checksum {
		return curated.Errorf(IntegrityFailure,
			fmt.Sprintf("%s has checksum %s, manifest says %s", id, sum, rec.Checksum))
	}

	if err := img.ReplaceFileContent(b); err != nil {
		return curated.Errorf("backup: %v", err)
	}

	logger.Logf("backup", "restored %s", id)

	return nil
}

// Delete removes a backup and its manifest entry.
func (m *Manager) Delete(id string) error {
	key, ok := m.keys[id]
	if !ok {
		return curated.Errorf(NotFound, id)
	}

	if err := m.db.Delete(key); err != nil {
		return err
	}
	if err := m.db.Sync(); err != nil {
		return err
	}

	delete(m.records, id)
	delete(m.keys, id)

	return nil
}

// Lookup returns the manifest record for a backup id.
func (m *Manager) Lookup(id string) (Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return Record{}, curated.Errorf(NotFound, id)
	}
	return *rec, nil
}

// Records returns the manifest records, oldest first.
func (m *Manager) Records() []Record {
	recs := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		recs = append(recs, *rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID < recs[j].ID
		}
		return recs[i].CreatedAt.Before(recs[j].CreatedAt)
	})
	return recs
}

// List the manifest in a human readable format.
func (m *Manager) List(output io.Writer) error {
	recs := m.Records()
	if len(recs) == 0 {
		_, err := io.WriteString(output, "no backups\n")
		return err
	}
	for _, rec := range recs {
		if _, err := fmt.Fprintf(output, "%s\n", rec.String()); err != nil {
			return err
		}
	}
	return nil
}

// Close ends the manifest session.
func (m *Manager) Close() error {
	return m.db.EndSession(true)
}

// uniqueID builds a backup id from the creation time and content checksum,
// extending it if a backup with the same id somehow already exists.
func (m *Manager) uniqueID(sum string) string {
	id := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), sum[:8])
	for n := 1; ; n++ {
		if _, ok := m.records[id]; !ok {
			return id
		}
		id = fmt.Sprintf("%s_%s_%d", time.Now().Format("20060102_150405"), sum[:8], n)
	}
}
