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

package cartridge

import "github.com/snespatch/snespatch/address"

// File offsets of the internal ROM header and the inverse-checksum pair
// within it (LoROM).
const (
	HeaderOffset             = address.FileOffset(0x7fc0)
	HeaderSize               = 0x20
	ChecksumComplementOffset = address.FileOffset(0x7fdc)
	ChecksumOffset           = address.FileOffset(0x7fde)
)

// Checksum computes the 16-bit sum of every byte of ROM data. The checksum
// fields themselves are included in the sum, as the console's boot check
// expects.
//
// The engine never writes the result back to the image. Whether and when to
// fix up the checksum fields after a modification is the caller's decision.
func (img *Image) Checksum() uint16 {
	var sum uint16
	for _, b := range img.data {
		sum += uint16(b)
	}
	return sum
}

// ChecksumComplement computes the value the complement field should hold for
// the given checksum.
func ChecksumComplement(checksum uint16) uint16 {
	return ^checksum
}

// StoredChecksum returns the inverse-checksum pair as currently stored in the
// image header: the complement field first, the checksum field second.
func (img *Image) StoredChecksum() (complement uint16, checksum uint16, err error) {
	for i, o := range []address.FileOffset{ChecksumComplementOffset, ChecksumOffset} {
		lo, err := img.Read8(o)
		if err != nil {
			return 0, 0, err
		}
		hi, err := img.Read8(o + 1)
		if err != nil {
			return 0, 0, err
		}
		v := uint16(lo) | uint16(hi)<<8
		if i == 0 {
			complement = v
		} else {
			checksum = v
		}
	}
	return complement, checksum, nil
}
