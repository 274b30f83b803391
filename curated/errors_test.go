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

package curated_test

import (
	"fmt"
	"testing"

	"github.com/snespatch/snespatch/curated"
	"github.com/snespatch/snespatch/test"
)

const testPattern = "test: not active (%s)"

func TestIdentity(t *testing.T) {
	err := curated.Errorf(testPattern, "foo")
	test.ExpectEquality(t, err.Error(), "test: not active (foo)")
	test.ExpectSuccess(t, curated.IsAny(err))
	test.ExpectSuccess(t, curated.Is(err, testPattern))
	test.ExpectFailure(t, curated.Is(err, "some other pattern"))

	// plain errors are not curated errors
	plain := fmt.Errorf(testPattern, "foo")
	test.ExpectFailure(t, curated.IsAny(plain))
	test.ExpectFailure(t, curated.Is(plain, testPattern))

	// nil is handled
	test.ExpectFailure(t, curated.IsAny(nil))
	test.ExpectFailure(t, curated.Is(nil, testPattern))
	test.ExpectFailure(t, curated.Has(nil, testPattern))
}

func TestChains(t *testing.T) {
	inner := curated.Errorf(testPattern, "foo")
	outer := curated.Errorf("engine: %v", inner)

	// Is() only matches the head of the chain, Has() matches anywhere
	test.ExpectFailure(t, curated.Is(outer, testPattern))
	test.ExpectSuccess(t, curated.Has(outer, testPattern))
	test.ExpectSuccess(t, curated.Has(outer, "engine: %v"))

	test.ExpectEquality(t, outer.Error(), "engine: test: not active (foo)")
}

func TestDeduplication(t *testing.T) {
	// wrapping with a duplicate message part should not stutter
	inner := curated.Errorf("engine: bad address")
	outer := curated.Errorf("engine: %v", inner)
	test.ExpectEquality(t, outer.Error(), "engine: bad address")
}
