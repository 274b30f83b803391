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

import (
	"fmt"

	"github.com/snespatch/snespatch/curated"
)

// RuntimeAddress converts a file offset to the address at which the console
// sees that byte. LoROM: 32K chunks of the file map to the upper half of
// consecutive banks.
func (o FileOffset) RuntimeAddress() (RuntimeAddress, error) {
	if o >= MaxFileOffset {
		return 0, curated.Errorf(OutOfRange,
			fmt.Sprintf("%s beyond the LoROM mapping (max %#06x)", o, uint32(MaxFileOffset)))
	}

	bank := uint32(o) / BankSize
	return RuntimeAddress(bank<<16 | BankSize | uint32(o)%BankSize), nil
}

// FileOffset converts a runtime address to the offset of the backing byte in
// the ROM file. Only addresses in the canonical LoROM window (banks 0x00 to
// 0x7d, upper half of each bank) are convertible.
func (a RuntimeAddress) FileOffset() (FileOffset, error) {
	bank := uint32(a) >> 16
	offs := uint32(a) & 0xffff

	if bank > MaxBank {
		return 0, curated.Errorf(OutOfRange,
			fmt.Sprintf("%s is not in a ROM bank (banks 0x00 to %#02x)", a, MaxBank))
	}
	if offs < BankSize {
		return 0, curated.Errorf(OutOfRange,
			fmt.Sprintf("%s is in the lower half of bank %#02x (ROM starts at %#04x)", a, bank, BankSize))
	}

	return FileOffset(bank*BankSize + offs - BankSize), nil
}

// SaveOffset converts a runtime address inside the save-mirror window to the
// corresponding offset in the save-slot record.
func (a RuntimeAddress) SaveOffset() (SaveOffset, error) {
	if a < SaveMirrorBase || a >= SaveMirrorBase+SaveSlotSize {
		return 0, curated.Errorf(OutOfRange,
			fmt.Sprintf("%s is not in the save-mirror window (%#06x to %#06x)",
				a, uint32(SaveMirrorBase), uint32(SaveMirrorBase+SaveSlotSize-1)))
	}
	return SaveOffset(a - SaveMirrorBase), nil
}

// RuntimeAddress converts a save offset to the work-memory address at which
// the byte is mirrored during play.
func (s SaveOffset) RuntimeAddress() (RuntimeAddress, error) {
	if s >= SaveSlotSize {
		return 0, curated.Errorf(OutOfRange,
			fmt.Sprintf("%s beyond the save-slot record (size %#04x)", s, SaveSlotSize))
	}
	return SaveMirrorBase + RuntimeAddress(s), nil
}

// ROMInitOffset converts a save offset to the file offset of the byte in the
// ROM's save-slot initialisation template.
func (s SaveOffset) ROMInitOffset() (FileOffset, error) {
	if s >= SaveSlotSize {
		return 0, curated.Errorf(OutOfRange,
			fmt.Sprintf("%s beyond the save-slot record (size %#04x)", s, SaveSlotSize))
	}
	return SaveTemplateBase + FileOffset(s), nil
}

// SaveOffset converts a file offset inside the save-slot initialisation
// template back to a save offset.
func (o FileOffset) SaveOffset() (SaveOffset, error) {
	if o < SaveTemplateBase || o >= SaveTemplateBase+SaveSlotSize {
		return 0, curated.Errorf(OutOfRange,
			fmt.Sprintf("%s is not in the save template (%#06x to %#06x)",
				o, uint32(SaveTemplateBase), uint32(SaveTemplateBase+SaveSlotSize-1)))
	}
	return SaveOffset(o - SaveTemplateBase), nil
}
