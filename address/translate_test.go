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

package address_test

import (
	"testing"

	"github.com/snespatch/snespatch/address"
	"github.com/snespatch/snespatch/curated"
	"github.com/snespatch/snespatch/test"
)

func TestFileToRuntime(t *testing.T) {
	cases := []struct {
		file    address.FileOffset
		runtime address.RuntimeAddress
	}{
		{0x000000, 0x008000},
		{0x000001, 0x008001},
		{0x007fff, 0x00ffff},
		{0x008000, 0x018000},
		{0x007fc0, 0x00ffc0}, // internal ROM header
		{0x0fc62, 0x01fc62},
		{0x183000, 0x30b000},
		{0x3effff, 0x7dffff},
	}

	for _, c := range cases {
		a, err := c.file.RuntimeAddress()
		test.ExpectSuccess(t, err, c.file)
		test.ExpectEquality(t, a, c.runtime, c.file)

		// round trip
		o, err := a.FileOffset()
		test.ExpectSuccess(t, err, a)
		test.ExpectEquality(t, o, c.file, a)
	}
}

func TestFileToRuntimeOutOfRange(t *testing.T) {
	_, err := address.MaxFileOffset.RuntimeAddress()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, address.OutOfRange))
}

func TestRuntimeToFileOutOfRange(t *testing.T) {
	cases := []address.RuntimeAddress{
		0x000000, // lower half of bank 0x00
		0x007fff,
		0x018000 - 1, // lower half of bank 0x01
		0x7e0000,     // work memory
		0x7ef360,
		0x808000, // mirror bank, not canonical
		0xffffff,
	}

	for _, a := range cases {
		_, err := a.FileOffset()
		test.ExpectFailure(t, err, a)
		test.ExpectSuccess(t, curated.Is(err, address.OutOfRange), a)
	}
}

func TestSaveMirror(t *testing.T) {
	// rupees and health as they appear in the original game's save slot
	cases := []struct {
		runtime address.RuntimeAddress
		save    address.SaveOffset
	}{
		{0x7ef000, 0x000},
		{0x7ef360, 0x360},
		{0x7ef36d, 0x36d},
		{0x7ef4ff, 0x4ff},
	}

	for _, c := range cases {
		s, err := c.runtime.SaveOffset()
		test.ExpectSuccess(t, err, c.runtime)
		test.ExpectEquality(t, s, c.save, c.runtime)

		a, err := s.RuntimeAddress()
		test.ExpectSuccess(t, err, s)
		test.ExpectEquality(t, a, c.runtime, s)
	}

	// immediately either side of the window
	for _, a := range []address.RuntimeAddress{0x7eefff, 0x7ef500, 0x008000} {
		_, err := a.SaveOffset()
		test.ExpectFailure(t, err, a)
		test.ExpectSuccess(t, curated.Is(err, address.OutOfRange), a)
	}
}

func TestSaveTemplate(t *testing.T) {
	for _, s := range []address.SaveOffset{0x000, 0x360, 0x36d, 0x4ff} {
		o, err := s.ROMInitOffset()
		test.ExpectSuccess(t, err, s)
		test.ExpectEquality(t, o, address.SaveTemplateBase+address.FileOffset(s), s)

		r, err := o.SaveOffset()
		test.ExpectSuccess(t, err, o)
		test.ExpectEquality(t, r, s, o)
	}

	_, err := address.SaveOffset(0x500).ROMInitOffset()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, address.OutOfRange))

	_, err = (address.SaveTemplateBase - 1).SaveOffset()
	test.ExpectFailure(t, err)

	_, err = (address.SaveTemplateBase + address.SaveSlotSize).SaveOffset()
	test.ExpectFailure(t, err)
}

// the full chain from a runtime work-memory address to the ROM byte that
// initialises it and back again
func TestSaveChainRoundTrip(t *testing.T) {
	const health = address.RuntimeAddress(0x7ef36d)

	s, err := health.SaveOffset()
	test.DemandSuccess(t, err)

	o, err := s.ROMInitOffset()
	test.DemandSuccess(t, err)

	s2, err := o.SaveOffset()
	test.DemandSuccess(t, err)

	a, err := s2.RuntimeAddress()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a, health)
}
