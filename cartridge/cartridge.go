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

import (
	"crypto/sha1"
	"fmt"

	"github.com/snespatch/snespatch/address"
	"github.com/snespatch/snespatch/curated"
	"github.com/snespatch/snespatch/logger"
	"github.com/spf13/afero"
)

// CopierHeaderSize is the size of the header some backup devices prepend to
// ROM files. Not part of the console's ROM format.
const CopierHeaderSize = 512

// Image is the in-memory copy of a ROM file.
type Image struct {
	// Filename of the loaded ROM
	Filename string

	// SHA-1 of the ROM data (not including any copier header), as computed
	// at load time. not updated as the image is modified
	Hash string

	// the copier header split off at load time. nil if the file has none
	copierHeader []byte

	// the ROM data. the length of the slice never changes after load
	data []byte
}

// Load reads a ROM file and returns the Image representing it. The presence
// of a copier header is decided by the file size: a file that is 512 bytes
// longer than a whole number of banks has one.
func Load(fs afero.Fs, filename string) (*Image, error) {
	b, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, curated.Errorf("cartridge: %v", err)
	}

	img, err := NewImage(b)
	if err != nil {
		return nil, curated.Errorf("cartridge: %s: %v", filename, err)
	}
	img.Filename = filename

	logger.Logf("cartridge", "loaded %s (%d bytes, copier header: %v, sha1: %s)",
		filename, img.Size(), img.HasCopierHeader(), img.Hash)

	return img, nil
}

// NewImage creates an Image directly from file content. Load() is the usual
// way of creating an Image; NewImage is useful for tests.
func NewImage(b []byte) (*Image, error) {
	img := &Image{}

	switch rem := len(b) % address.BankSize; rem {
	case 0:
		img.data = b
	case CopierHeaderSize:
		img.copierHeader = b[:CopierHeaderSize]
		img.data = b[CopierHeaderSize:]
	default:
		return nil, fmt.Errorf("size %d is not a whole number of banks (with or without a copier header)", len(b))
	}

	if len(img.data) == 0 {
		return nil, fmt.Errorf("no ROM data")
	}

	img.Hash = fmt.Sprintf("%x", sha1.Sum(img.data))

	return img, nil
}

// Size of the ROM data in bytes, not counting any copier header.
func (img *Image) Size() int {
	return len(img.data)
}

// HasCopierHeader returns true if the loaded file carried a copier header.
func (img *Image) HasCopierHeader() bool {
	return img.copierHeader != nil
}

// Read8 returns the byte at the specified offset.
func (img *Image) Read8(o address.FileOffset) (uint8, error) {
	if int(o) >= len(img.data) {
		return 0, curated.Errorf(address.OutOfRange,
			fmt.Sprintf("read of %s beyond ROM size %#06x", o, len(img.data)))
	}
	return img.data[o], nil
}

// Write8 sets the byte at the specified offset. Callers outside this project
// should not use Write8 directly: all mutation should go through a
// transaction so that every byte change is attributable to a logged
// operation.
func (img *Image) Write8(o address.FileOffset, v uint8) error {
	if int(o) >= len(img.data) {
		return curated.Errorf(address.OutOfRange,
			fmt.Sprintf("write of %s beyond ROM size %#06x", o, len(img.data)))
	}
	img.data[o] = v
	return nil
}

// Bytes returns the ROM data without copying. Collaborators use this for
// read-only work, checksum tooling in particular. Writing through the
// returned slice bypasses the transaction log and leaves the change
// unattributable; nothing good comes of it.
func (img *Image) Bytes() []byte {
	return img.data
}

// FileBytes returns a copy of the content that Save() would write, copier
// header included.
func (img *Image) FileBytes() []byte {
	b := make([]byte, 0, len(img.copierHeader)+len(img.data))
	b = append(b, img.copierHeader...)
	b = append(b, img.data...)
	return b
}

// ReplaceFileContent replaces the whole of the image with new file content,
// which must be exactly the same size as the current content. The copier
// header, if there is one, is re-split from the new content.
func (img *Image) ReplaceFileContent(b []byte) error {
	if len(b) != len(img.copierHeader)+len(img.data) {
		return curated.Errorf("cartridge: replacement content is %d bytes, image is %d bytes",
			len(b), len(img.copierHeader)+len(img.data))
	}

	copy(img.copierHeader, b[:len(img.copierHeader)])
	copy(img.data, b[len(img.copierHeader):])

	return nil
}

// Save writes the image back to the file it was loaded from.
func (img *Image) Save(fs afero.Fs) error {
	return img.SaveAs(fs, img.Filename)
}

// SaveAs writes the image, copier header included, to the named file.
func (img *Image) SaveAs(fs afero.Fs, filename string) error {
	if filename == "" {
		return curated.Errorf("cartridge: no filename to save to")
	}
	if err := afero.WriteFile(fs, filename, img.FileBytes(), 0644); err != nil {
		return curated.Errorf("cartridge: %v", err)
	}
	logger.Logf("cartridge", "saved %s (%d bytes)", filename, len(img.copierHeader)+len(img.data))
	return nil
}
