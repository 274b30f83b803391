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

package cartridge_test

import (
	"bytes"
	"testing"

	"github.com/snespatch/snespatch/address"
	"github.com/snespatch/snespatch/cartridge"
	"github.com/snespatch/snespatch/curated"
	"github.com/snespatch/snespatch/test"
	"github.com/spf13/afero"
)

func TestCopierHeaderDetection(t *testing.T) {
	// a whole number of banks means no copier header
	img, err := cartridge.NewImage(make([]byte, 4*address.BankSize))
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, img.HasCopierHeader())
	test.ExpectEquality(t, img.Size(), 4*address.BankSize)

	// 512 bytes over means a copier header
	img, err = cartridge.NewImage(make([]byte, 4*address.BankSize+cartridge.CopierHeaderSize))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, img.HasCopierHeader())
	test.ExpectEquality(t, img.Size(), 4*address.BankSize)

	// anything else is not a ROM file
	_, err = cartridge.NewImage(make([]byte, 4*address.BankSize+100))
	test.ExpectFailure(t, err)

	// and nor is a copier header with nothing after it
	_, err = cartridge.NewImage(make([]byte, cartridge.CopierHeaderSize))
	test.ExpectFailure(t, err)
}

func TestReadWriteBounds(t *testing.T) {
	img, err := cartridge.NewImage(make([]byte, address.BankSize))
	test.DemandSuccess(t, err)

	v, err := img.Read8(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x00))

	test.ExpectSuccess(t, img.Write8(0x1000, 0xab))
	v, err = img.Read8(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xab))

	_, err = img.Read8(address.FileOffset(address.BankSize))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, address.OutOfRange))

	err = img.Write8(address.FileOffset(address.BankSize), 0xff)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, address.OutOfRange))
}

func TestSaveRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	content := make([]byte, 2*address.BankSize+cartridge.CopierHeaderSize)
	for i := range content {
		content[i] = uint8(i)
	}
	test.DemandSuccess(t, afero.WriteFile(fs, "game.sfc", content, 0644))

	img, err := cartridge.Load(fs, "game.sfc")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, img.HasCopierHeader())

	// a modification is not visible in the file until Save()
	test.DemandSuccess(t, img.Write8(0x0000, 0xab))
	onDisk, err := afero.ReadFile(fs, "game.sfc")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(onDisk, content))

	test.DemandSuccess(t, img.Save(fs))
	onDisk, err = afero.ReadFile(fs, "game.sfc")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(onDisk), len(content))

	// the copier header is preserved and the write is at the right offset
	test.ExpectSuccess(t, bytes.Equal(onDisk[:cartridge.CopierHeaderSize], content[:cartridge.CopierHeaderSize]))
	test.ExpectEquality(t, onDisk[cartridge.CopierHeaderSize], uint8(0xab))
	test.ExpectSuccess(t, bytes.Equal(onDisk[cartridge.CopierHeaderSize+1:], content[cartridge.CopierHeaderSize+1:]))
}

func TestChecksum(t *testing.T) {
	img, err := cartridge.NewImage(make([]byte, address.BankSize))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Checksum(), uint16(0))

	test.DemandSuccess(t, img.Write8(0x0000, 0x01))
	test.DemandSuccess(t, img.Write8(0x0001, 0xff))
	test.ExpectEquality(t, img.Checksum(), uint16(0x100))
	test.ExpectEquality(t, cartridge.ChecksumComplement(img.Checksum()), uint16(0xfeff))

	// stored pair is read little-endian from the header fields
	test.DemandSuccess(t, img.Write8(cartridge.ChecksumOffset, 0x34))
	test.DemandSuccess(t, img.Write8(cartridge.ChecksumOffset+1, 0x12))
	test.DemandSuccess(t, img.Write8(cartridge.ChecksumComplementOffset, 0xcb))
	test.DemandSuccess(t, img.Write8(cartridge.ChecksumComplementOffset+1, 0xed))

	complement, checksum, err := img.StoredChecksum()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, checksum, uint16(0x1234))
	test.ExpectEquality(t, complement, uint16(0xedcb))
}

func TestReplaceFileContent(t *testing.T) {
	img, err := cartridge.NewImage(make([]byte, address.BankSize))
	test.DemandSuccess(t, err)

	// wrong length is rejected
	test.ExpectFailure(t, img.ReplaceFileContent(make([]byte, address.BankSize+1)))

	replacement := make([]byte, address.BankSize)
	replacement[0x2000] = 0x99
	test.ExpectSuccess(t, img.ReplaceFileContent(replacement))

	v, err := img.Read8(0x2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x99))
}
