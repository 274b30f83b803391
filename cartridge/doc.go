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

// Package cartridge loads and owns the ROM image being modified.
//
// An Image is the in-memory copy of a ROM file. Its length is fixed at load
// time; only byte values change after that. A 512-byte copier header, if the
// file has one, is detected from the file size and split off at load so that
// file offsets elsewhere in the application are always relative to the start
// of the ROM data proper. The header is put back when the image is saved.
//
// The image on disk is not updated until Save() is called. Any other program
// reading the file while modifications are in flight sees the bytes as they
// were at load time (or at the previous Save).
//
// The checksum functions compute the console's inverse-checksum pair but
// never write it. Fixing up the checksum fields after a modification is the
// caller's responsibility.
package cartridge
