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

// Package database is a very simple way of storing structured but arbitrary
// entry types in a flat file. It is used by the backup package for the backup
// manifest, which must survive process restarts to be of any use for audit.
//
// Use of a database requires starting a "session", coupled with an
// EndSession() once done. For example (error handling removed for clarity):
//
//	db, _ := database.StartSession(fs, dbPath, database.ActivityCreating, initDBSession)
//	defer db.EndSession(true)
//
// The initialisation function registers the entry types the session may
// encounter:
//
//	func initDBSession(db *database.Session) error {
//		return db.RegisterEntryType("backup", deserialiseBackupEntry)
//	}
//
// On disk, one line per entry: a three digit key, the entry type id and then
// the entry fields, all comma separated. Fields must not themselves contain
// commas or newlines; entry implementations are responsible for keeping to
// that.
package database
