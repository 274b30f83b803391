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

package curated

import (
	"fmt"
	"strings"
)

// curated is an implementation of the go language error interface.
type curated struct {
	pattern string
	values  []interface{}
}

// Errorf creates a new curated error. The pattern argument serves the same
// purpose as the format argument of fmt.Errorf() but, unlike fmt errors, it is
// retained after creation and acts as the identity of the error for the
// purposes of the Is() and Has() functions.
func Errorf(pattern string, values ...interface{}) error {
	// formatting is deferred until the Error() function is called. we need
	// the arguments in their raw form so that Has() can walk the chain
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// Error implements the go language error interface. The rendered message has
// adjacent duplicate parts removed. Parts are delimited by the sub-string
// ': ' so an error created inside a function that wraps it with the same
// prefix does not stutter.
func (er curated) Error() string {
	s := fmt.Errorf(er.pattern, er.values...).Error()

	p := strings.Split(s, ": ")
	t := make([]string, 0, len(p))
	for i := range p {
		if len(t) == 0 || t[len(t)-1] != p[i] {
			t = append(t, p[i])
		}
	}

	return strings.Join(t, ": ")
}

// Unwrap returns the first curated error among the error's format values,
// allowing curated errors to take part in errors.Is() chains.
func (er curated) Unwrap() error {
	for i := range er.values {
		if e, ok := er.values[i].(curated); ok {
			return e
		}
	}
	return nil
}

// IsAny checks if the error is a curated error.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is checks if the error is a curated error with the specified pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}

	if er, ok := err.(curated); ok {
		return er.pattern == pattern
	}

	return false
}

// Has checks if the error is a curated error with the specified pattern
// somewhere in the chain.
func Has(err error, pattern string) bool {
	if err == nil {
		return false
	}

	er, ok := err.(curated)
	if !ok {
		return false
	}

	if er.pattern == pattern {
		return true
	}

	for i := range er.values {
		if e, ok := er.values[i].(curated); ok {
			if Has(e, pattern) {
				return true
			}
		}
	}

	return false
}
