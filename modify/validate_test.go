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

package modify_test

import (
	"testing"

	"github.com/snespatch/snespatch/address"
	"github.com/snespatch/snespatch/curated"
	"github.com/snespatch/snespatch/discovery"
	"github.com/snespatch/snespatch/modify"
	"github.com/snespatch/snespatch/test"
)

func TestProtectedRange(t *testing.T) {
	eng, _ := newTestEngine(t, modify.DefaultRanges())

	// the internal ROM header is protected by the default configuration
	img := eng.Image()
	test.DemandSuccess(t, img.Write8(0x7fc0, 0x54))

	tx, err := eng.Begin()
	test.DemandSuccess(t, err)

	err = eng.WriteByte(tx, 0x7fc0, 0xff, false)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, modify.ProtectedRange))

	// explicit confirmation does not override protection
	err = eng.WriteByte(tx, 0x7fc0, 0xff, true)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, modify.ProtectedRange))

	// a read of the same address succeeds and returns the current byte
	v, err := eng.ReadByte(0x7fc0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x54))

	test.DemandSuccess(t, eng.Rollback(tx))
}

func TestConfirmationRequired(t *testing.T) {
	ranges := modify.Ranges{
		Confirm: []modify.Range{{Start: 0x4000, End: 0x40ff, Reason: "enemy table"}},
	}
	eng, _ := newTestEngine(t, ranges)

	tx, err := eng.Begin()
	test.DemandSuccess(t, err)

	err = eng.WriteByte(tx, 0x4010, 0x01, false)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, modify.ConfirmationRequired))

	// the same write with the opt-in flag
	test.ExpectSuccess(t, eng.WriteByte(tx, 0x4010, 0x01, true))

	test.DemandSuccess(t, eng.Rollback(tx))
}

func TestAllowedRanges(t *testing.T) {
	ranges := modify.Ranges{
		Allowed: []modify.Range{{Start: 0x1000, End: 0x1fff, Reason: "item table"}},
	}
	eng, _ := newTestEngine(t, ranges)

	tx, err := eng.Begin()
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, eng.WriteByte(tx, 0x1800, 0x01, false))

	err = eng.WriteByte(tx, 0x3000, 0x01, false)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, modify.OutsideAllowedRanges))

	// reads are not constrained by the allowed ranges
	_, err = eng.ReadByte(0x3000)
	test.ExpectSuccess(t, err)

	test.DemandSuccess(t, eng.Rollback(tx))
}

func TestValidationBounds(t *testing.T) {
	eng, _ := newTestEngine(t, modify.Ranges{})

	tx, err := eng.Begin()
	test.DemandSuccess(t, err)

	// one byte beyond the end of a 1MB image
	err = eng.WriteByte(tx, 0x100000, 0x01, false)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, address.OutOfRange))

	_, err = eng.ReadByte(0x100000)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, address.OutOfRange))

	test.DemandSuccess(t, eng.Rollback(tx))
}

func TestDiscoveryIntake(t *testing.T) {
	eng, _ := newTestEngine(t, modify.Ranges{})

	// a record that does not fit the image is rejected whatever the
	// database claims about it
	err := eng.AllowFromDiscovery(discovery.Record{
		Name: "bogus", Address: 0xfffff, Size: 16, Confidence: 1.0,
	})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, address.OutOfRange))

	err = eng.ConfirmFromDiscovery(discovery.Record{
		Name: "bogus", Address: 0x1000, Size: 0, Confidence: 1.0,
	})
	test.ExpectFailure(t, err)

	// a valid record narrows writes to the allowed range
	err = eng.AllowFromDiscovery(discovery.Record{
		Name: "rupees", Address: 0x183360, Size: 2, Confidence: 0.9,
	})
	test.DemandSuccess(t, err)

	tx, err := eng.Begin()
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, eng.WriteByte(tx, 0x183360, 0xff, false))

	err = eng.WriteByte(tx, 0x1000, 0x01, false)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, modify.OutsideAllowedRanges))

	test.DemandSuccess(t, eng.Rollback(tx))
}

func TestConfirmFromDiscovery(t *testing.T) {
	eng, _ := newTestEngine(t, modify.Ranges{})

	err := eng.ConfirmFromDiscovery(discovery.Record{
		Name: "health", Address: 0x18336d, Size: 1, Confidence: 0.5,
	})
	test.DemandSuccess(t, err)

	tx, err := eng.Begin()
	test.DemandSuccess(t, err)

	err = eng.WriteByte(tx, 0x18336d, 0xa0, false)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, modify.ConfirmationRequired))

	test.ExpectSuccess(t, eng.WriteByte(tx, 0x18336d, 0xa0, true))

	test.DemandSuccess(t, eng.Rollback(tx))
}
