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

package modify

import (
	"fmt"

	"github.com/snespatch/snespatch/address"
	"github.com/snespatch/snespatch/cartridge"
	"github.com/snespatch/snespatch/curated"
)

// Error patterns raised by address validation. In addition, an access that
// falls outside the image raises address.OutOfRange.
const (
	// the access targets a protected range
	ProtectedRange = "validation: protected range: %s"

	// the access targets a sensitive range and the caller did not opt in
	ConfirmationRequired = "validation: confirmation required: %s"

	// allowed ranges are configured and the access is outside all of them
	OutsideAllowedRanges = "validation: outside allowed ranges: %s"
)

// Access is the type of access being validated.
type Access int

// List of valid Access values.
const (
	AccessRead Access = iota
	AccessWrite
)

func (c Access) String() string {
	switch c {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	}
	return "unknown access"
}

// Range is an inclusive range of file offsets.
type Range struct {
	Start address.FileOffset
	End   address.FileOffset

	// why the range is listed. quoted in validation errors
	Reason string
}

func (r Range) String() string {
	return fmt.Sprintf("%#06x to %#06x (%s)", uint32(r.Start), uint32(r.End), r.Reason)
}

// overlaps returns true if the access [start, start+size) touches the range.
func (r Range) overlaps(start address.FileOffset, size int) bool {
	return start <= r.End && start+address.FileOffset(size)-1 >= r.Start
}

// Ranges is the address validation configuration. All three lists may be
// empty. An empty Allowed list means writes are allowed by default anywhere
// outside the Protected and Confirm ranges; a non-empty Allowed list means
// writes must fall inside one of its ranges.
type Ranges struct {
	Allowed   []Range
	Protected []Range
	Confirm   []Range
}

// DefaultRanges returns the validation configuration used when the caller has
// nothing better: the internal ROM header and the interrupt vectors are
// protected and everything else is writable.
func DefaultRanges() Ranges {
	return Ranges{
		Protected: []Range{
			{Start: cartridge.HeaderOffset, End: cartridge.HeaderOffset + cartridge.HeaderSize - 1, Reason: "internal ROM header"},
			{Start: 0x7fe0, End: 0x7fff, Reason: "interrupt vectors"},
		},
	}
}

// Check validates an access of size bytes starting at the given offset,
// against an image of imageSize bytes. Reads are always permitted inside the
// image; the range lists only constrain writes. The confirmed argument is the
// caller's opt-in for writes to Confirm ranges.
//
// Check has no side effects. A nil return means the access may proceed.
func (v Ranges) Check(o address.FileOffset, access Access, size int, confirmed bool, imageSize int) error {
	if size < 1 {
		return curated.Errorf(address.OutOfRange,
			fmt.Sprintf("%s of %d bytes at %s", access, size, o))
	}
	if int(o)+size > imageSize {
		return curated.Errorf(address.OutOfRange,
			fmt.Sprintf("%s of %d bytes at %s beyond ROM size %#06x", access, size, o, imageSize))
	}

	if access == AccessRead {
		return nil
	}

	for _, r := range v.Protected {
		if r.overlaps(o, size) {
			return curated.Errorf(ProtectedRange,
				fmt.Sprintf("%s of %d bytes at %s touches %s", access, size, o, r))
		}
	}

	if !confirmed {
		for _, r := range v.Confirm {
			if r.overlaps(o, size) {
				return curated.Errorf(ConfirmationRequired,
					fmt.Sprintf("%s of %d bytes at %s touches %s", access, size, o, r))
			}
		}
	}

	if len(v.Allowed) > 0 {
		allowed := false
		for _, r := range v.Allowed {
			if r.overlaps(o, size) {
				allowed = true
				break
			}
		}
		if !allowed {
			return curated.Errorf(OutsideAllowedRanges,
				fmt.Sprintf("%s of %d bytes at %s", access, size, o))
		}
	}

	return nil
}
