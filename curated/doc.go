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

// Package curated is the error type used throughout snespatch. A curated
// error keeps the pattern string it was created with, meaning the pattern
// doubles as the error's identity:
//
//	err := curated.Errorf("transaction: not active (%s)", id)
//	...
//	if curated.Is(err, "transaction: not active (%s)") {
//
// Packages that raise errors other packages need to recognise export the
// pattern as a const string. The closed set of error kinds raised by the
// modification engine is declared across the address, modify and backup
// packages.
//
// Wrapping one curated error in another builds a message chain. Parts of the
// chain are separated by the sub-string ': ' and adjacent duplicate parts are
// folded when the message is rendered. The Has() function tests for a pattern
// anywhere in the chain, not just at the head.
package curated
