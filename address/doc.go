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

// Package address translates between the three address spaces the engine
// works with.
//
// FileOffset is a position in the ROM file, not counting any 512-byte copier
// header (the cartridge package strips the copier header at load time so the
// rest of the application never sees it).
//
// RuntimeAddress is the 24-bit address seen by the console CPU. The mapping
// between FileOffset and RuntimeAddress is the LoROM mapping: each 32K chunk
// of the file appears in the upper half of consecutive banks, starting at
// bank 0x00. Mirror banks (0x80 onwards) are deliberately outside the core
// mapping; an address must be in canonical form to be convertible.
//
// SaveOffset is a position in a save-slot record. During play the current
// save slot is mirrored in work memory at SaveMirrorBase and the ROM holds an
// initialisation template for fresh save slots at SaveTemplateBase. Both
// relations are simple additive offsets, valid only inside the save-slot
// window.
//
// All conversions are pure integer arithmetic over the address value and the
// constants in this package. They never consult ROM content. A conversion
// outside its window fails with the OutOfRange error rather than returning a
// wrong answer; for any address inside a window, converting to another space
// and back yields the original address exactly.
package address
