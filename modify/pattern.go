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

package modify

import (
	"fmt"

	"github.com/snespatch/snespatch/address"
	"github.com/snespatch/snespatch/curated"
	"github.com/snespatch/snespatch/logger"
)

// Error patterns raised by pattern registration and application.
const (
	// no pattern with the requested name is registered
	PatternNotFound = "pattern: not found: %s"

	// a pattern with the same name is already registered
	PatternExists = "pattern: already registered: %s"

	// a pattern's conflict list names a pattern that is not registered
	UnknownConflict = "pattern: unknown conflict: %s"

	// a prerequisite byte does not have its expected value. the pattern does
	// not apply to the current image
	PrerequisiteFailed = "pattern: prerequisite failed: %s"

	// a pattern the requested pattern conflicts with has already been
	// applied
	PatternConflict = "pattern: conflict: %s"

	// RevertPattern() on a pattern that is not flagged reversible
	NotReversible = "pattern: not reversible: %s"

	// RevertPattern() on a pattern that has not been applied
	NotApplied = "pattern: not applied: %s"
)

// PatternOp is one byte write declared by a modification pattern.
type PatternOp struct {
	Address address.FileOffset
	Value   uint8
}

// Prerequisite is a byte value a pattern requires before it can be applied.
type Prerequisite struct {
	Address address.FileOffset
	Value   uint8
}

// Pattern is a named bundle of byte writes, prerequisite checks and declared
// conflicts. Patterns are declarative data; they are not changed after
// registration.
type Pattern struct {
	Name          string
	Operations    []PatternOp
	Prerequisites []Prerequisite

	// names of registered patterns that must not already be applied when
	// this one is
	Conflicts []string

	// a reversible pattern can be undone with RevertPattern()
	Reversible bool
}

// RegisterPattern adds a pattern to the engine's registry. The pattern name
// must be unique and every pattern named in its conflict list must already be
// registered.
func (e *Engine) RegisterPattern(p Pattern) error {
	if _, ok := e.patterns[p.Name]; ok {
		return curated.Errorf(PatternExists, p.Name)
	}
	for _, c := range p.Conflicts {
		if _, ok := e.patterns[c]; !ok {
			return curated.Errorf(UnknownConflict,
				fmt.Sprintf("%s conflicts with unregistered pattern %s", p.Name, c))
		}
	}

	e.patterns[p.Name] = p

	return nil
}

// ApplyPattern applies a registered pattern through a single transaction.
// Application is all-or-nothing: prerequisite and conflict failures abort
// before any write, and a validation failure part way through rolls the
// transaction back, so a failed application is never visible in the image.
//
// The confirmed argument is the caller's opt-in for writes to
// confirmation-required ranges, as for WriteByte().
func (e *Engine) ApplyPattern(name string, confirmed bool) error {
	p, ok := e.patterns[name]
	if !ok {
		return curated.Errorf(PatternNotFound, name)
	}

	for _, pre := range p.Prerequisites {
		v, err := e.ReadByte(pre.Address)
		if err != nil {
			return curated.Errorf("pattern: %s: %v", name, err)
		}
		if v != pre.Value {
			return curated.Errorf(PrerequisiteFailed,
				fmt.Sprintf("%s wants %#02x at %s but found %#02x", name, pre.Value, pre.Address, v))
		}
	}

	for _, c := range p.Conflicts {
		if _, applied := e.applied[c]; applied {
			return curated.Errorf(PatternConflict,
				fmt.Sprintf("%s conflicts with already applied pattern %s", name, c))
		}
	}

	tx, err := e.Begin()
	if err != nil {
		return curated.Errorf("pattern: %s: %v", name, err)
	}

	for _, op := range p.Operations {
		if err := e.WriteByte(tx, op.Address, op.Value, confirmed); err != nil {
			if rerr := e.Rollback(tx); rerr != nil {
				return curated.Errorf("pattern: %s: %v", name, rerr)
			}
			return curated.Errorf("pattern: %s: %v", name, err)
		}
	}

	if err := e.Commit(tx); err != nil {
		return curated.Errorf("pattern: %s: %v", name, err)
	}

	e.applied[name] = tx.Operations()
	logger.Logf("pattern", "applied %s (%d operations)", name, len(p.Operations))

	return nil
}

// RevertPattern undoes a previously applied reversible pattern by writing the
// original values recorded at application time back through a fresh
// transaction.
func (e *Engine) RevertPattern(name string) error {
	p, ok := e.patterns[name]
	if !ok {
		return curated.Errorf(PatternNotFound, name)
	}
	if !p.Reversible {
		return curated.Errorf(NotReversible, name)
	}

	ops, ok := e.applied[name]
	if !ok {
		return curated.Errorf(NotApplied, name)
	}

	tx, err := e.Begin()
	if err != nil {
		return curated.Errorf("pattern: %s: %v", name, err)
	}

	// reverse order for the same reason rollback works in reverse order
	for i := len(ops) - 1; i >= 0; i-- {
		// the apply was already confirmed where it needed to be
		if err := e.WriteByte(tx, ops[i].Address, ops[i].Original, true); err != nil {
			if rerr := e.Rollback(tx); rerr != nil {
				return curated.Errorf("pattern: %s: %v", name, rerr)
			}
			return curated.Errorf("pattern: %s: %v", name, err)
		}
	}

	if err := e.Commit(tx); err != nil {
		return curated.Errorf("pattern: %s: %v", name, err)
	}

	delete(e.applied, name)
	logger.Logf("pattern", "reverted %s (%d operations)", name, len(ops))

	return nil
}

// AppliedPatterns returns the names of the patterns currently applied to the
// image, in no particular order.
func (e *Engine) AppliedPatterns() []string {
	names := make([]string, 0, len(e.applied))
	for n := range e.applied {
		names = append(names, n)
	}
	return names
}
