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

package logger

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Entry represents a single line/entry in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string

	// the number of additional times the entry has been repeated
	repeated int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.Tag, e.Detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// Logger is an ordered collection of log entries. The zero value is not
// usable; use NewLogger().
type Logger struct {
	maxEntries int
	entries    []Entry

	// if echo is not nil, new entries are written to it as they arrive
	echo io.Writer
}

// NewLogger is the preferred method of initialisation for the Logger type.
func NewLogger(maxEntries int) *Logger {
	return &Logger{
		maxEntries: maxEntries,
		entries:    make([]Entry, 0, maxEntries),
	}
}

// Log adds an entry to the logger. An entry with the same tag and detail as
// the most recent entry is folded into it rather than appended.
func (l *Logger) Log(tag, detail string) {
	// newline characters would break the one-line-per-entry output format
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	if len(l.entries) > 0 {
		last := &l.entries[len(l.entries)-1]
		if last.Tag == tag && last.Detail == detail {
			last.repeated++
			last.Timestamp = time.Now()
			return
		}
	}

	e := Entry{Timestamp: time.Now(), Tag: tag, Detail: detail}
	l.entries = append(l.entries, e)

	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[len(l.entries)-l.maxEntries:]
	}

	if l.echo != nil {
		io.WriteString(l.echo, e.String())
	}
}

// Logf adds a formatted entry to the logger.
func (l *Logger) Logf(tag, detail string, args ...interface{}) {
	l.Log(tag, fmt.Sprintf(detail, args...))
}

// Clear all entries from the logger.
func (l *Logger) Clear() {
	l.entries = l.entries[:0]
}

// SetEcho to an io.Writer to have new entries written out as they arrive. A
// nil writer turns echoing off.
func (l *Logger) SetEcho(output io.Writer) {
	l.echo = output
}

// Write contents of the logger to an io.Writer.
func (l *Logger) Write(output io.Writer) {
	for _, e := range l.entries {
		io.WriteString(output, e.String())
	}
}

// Tail writes the last N entries to an io.Writer.
func (l *Logger) Tail(output io.Writer, number int) {
	if number > len(l.entries) {
		number = len(l.entries)
	}
	for _, e := range l.entries[len(l.entries)-number:] {
		io.WriteString(output, e.String())
	}
}
