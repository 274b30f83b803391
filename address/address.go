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

package address

import "fmt"

// FileOffset is a position in the ROM file, relative to the start of the ROM
// data proper (ie. after any copier header).
type FileOffset uint32

// RuntimeAddress is a 24-bit address on the console bus.
type RuntimeAddress uint32

// SaveOffset is a position in a save-slot record.
type SaveOffset uint32

func (o FileOffset) String() string {
	return fmt.Sprintf("file offset %#06x", uint32(o))
}

func (a RuntimeAddress) String() string {
	return fmt.Sprintf("runtime address %#06x", uint32(a))
}

func (s SaveOffset) String() string {
	return fmt.Sprintf("save offset %#04x", uint32(s))
}

// OutOfRange is the error pattern raised when an address falls outside the
// window in which a conversion is defined. The failing conversion and address
// are named in the message.
const OutOfRange = "address: out of range: %s"

// BankSize is the number of ROM bytes mapped into each bank (LoROM).
const BankSize = 0x8000

// MaxBank is the highest bank number the core mapping covers. Banks 0x7e and
// 0x7f are work memory, not ROM, and the mirror banks above 0x7f are outside
// the canonical mapping.
const MaxBank = 0x7d

// MaxFileOffset is the first file offset beyond the reach of the LoROM
// mapping.
const MaxFileOffset = FileOffset((MaxBank + 1) * BankSize)

// WRAMBase is the runtime address at which the console's work memory begins.
const WRAMBase = RuntimeAddress(0x7e0000)

// SaveMirrorBase is the runtime address at which the active save slot is
// mirrored in work memory.
const SaveMirrorBase = RuntimeAddress(0x7ef000)

// SaveSlotSize is the size in bytes of one save-slot record.
const SaveSlotSize = 0x500

// SaveTemplateBase is the file offset of the save-slot initialisation
// template held in the ROM.
const SaveTemplateBase = FileOffset(0x183000)
