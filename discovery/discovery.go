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

// Package discovery defines the records the engine accepts from an external
// discovery database. A discovery record is a hint about an interesting
// location in the ROM. The engine only ever treats records as read-only input
// and re-validates their bounds itself; a record is never trusted to be
// within the ROM just because the database says so.
package discovery

import (
	"fmt"

	"github.com/snespatch/snespatch/address"
)

// Record describes a location in the ROM reported by a discovery database.
type Record struct {
	// Name of the discovery ("health", "rupees", ...). informational only
	Name string

	Address address.FileOffset
	Size    int

	// Confidence that the discovery is what it is claimed to be, from 0 to 1
	Confidence float64

	// ValidRange optionally bounds the byte values considered sane for this
	// location
	ValidRange *ValueRange
}

// ValueRange is an inclusive range of byte values.
type ValueRange struct {
	Min uint8
	Max uint8
}

func (r Record) String() string {
	return fmt.Sprintf("%s at %s (%d bytes, confidence %.2f)", r.Name, r.Address, r.Size, r.Confidence)
}
