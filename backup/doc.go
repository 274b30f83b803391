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

// Package backup creates and restores whole-image snapshots.
//
// Snapshots live one-file-per-backup in the backups directory under the
// resource path, named by backup id. The manifest, a database file in the
// same directory, records each backup's checksum, origin and creation time;
// because the manifest is on disk, backups remain verifiable and auditable
// across process restarts.
//
// Creation is atomic: the snapshot is written to a temporary file, read back
// and checksum-verified, and only then renamed into place and recorded in the
// manifest. A failure at any point leaves no partial backup behind.
//
// Restore verifies the snapshot against the recorded checksum before the
// live image is touched. A snapshot that cannot be verified is never applied.
package backup
