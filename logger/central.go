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

// Package logger is the central log for the application. There is no need for
// more than one log so the package level functions all work with a single
// central Logger instance.
//
// Log entries are tagged with the name of the package or subsystem they come
// from:
//
//	logger.Logf("backup", "created %s", backup.ID)
package logger

import "io"

// only allowing one central log for the entire application.
var central *Logger

// maximum number of entries in the central logger.
const maxCentral = 256

func init() {
	central = NewLogger(maxCentral)
}

// Log adds an entry to the central logger.
func Log(tag, detail string) {
	central.Log(tag, detail)
}

// Logf adds a formatted entry to the central logger.
func Logf(tag, detail string, args ...interface{}) {
	central.Logf(tag, detail, args...)
}

// Clear all entries from central logger.
func Clear() {
	central.Clear()
}

// SetEcho to an io.Writer to have central log entries echoed as they arrive.
func SetEcho(output io.Writer) {
	central.SetEcho(output)
}

// Write contents of central logger to io.Writer.
func Write(output io.Writer) {
	central.Write(output)
}

// Tail writes the last N entries of the central logger to io.Writer.
func Tail(output io.Writer, number int) {
	central.Tail(output, number)
}
