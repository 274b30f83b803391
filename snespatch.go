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

// snespatch modifies console ROM images, safely. This file is the thin
// command line surface over the modify package; everything interesting
// happens in there.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/snespatch/snespatch/address"
	"github.com/snespatch/snespatch/backup"
	"github.com/snespatch/snespatch/cartridge"
	"github.com/snespatch/snespatch/logger"
	"github.com/snespatch/snespatch/modify"
	"github.com/snespatch/snespatch/version"
	"github.com/spf13/afero"
)

const usage = `usage: snespatch <mode> ...
modes: poke, backup, restore, list, translate, checksum, version`

func main() {
	logger.SetEcho(os.Stderr)
	if err := run(afero.NewOsFs(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(10)
	}
}

func run(fs afero.Fs, args []string, output io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(output, usage)
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "poke":
		return poke(fs, args[1:], output)
	case "backup":
		return createBackup(fs, args[1:], output)
	case "restore":
		return restore(fs, args[1:], output)
	case "list":
		return list(fs, output)
	case "translate":
		return translate(args[1:], output)
	case "checksum":
		return checksum(fs, args[1:], output)
	case "version":
		v, _ := version.Version()
		fmt.Fprintf(output, "%s (%s)\n", version.ApplicationName, v)
		return nil
	}

	fmt.Fprintln(output, usage)
	return fmt.Errorf("unrecognised mode (%s)", args[0])
}

func newEngine(fs afero.Fs, filename string) (*modify.Engine, error) {
	img, err := cartridge.Load(fs, filename)
	if err != nil {
		return nil, err
	}
	return modify.NewEngine(fs, img, modify.DefaultRanges())
}

// poke applies one or more offset=value writes as a single transaction.
func poke(fs afero.Fs, args []string, output io.Writer) error {
	flags := flag.NewFlagSet("poke", flag.ContinueOnError)
	confirmed := flags.Bool("confirm", false, "opt in to writes in confirmation-required ranges")
	withBackup := flags.Bool("backup", false, "create a backup before writing")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 2 {
		return fmt.Errorf("poke: usage: poke [flags] <romfile> <offset>=<value> ...")
	}

	eng, err := newEngine(fs, flags.Arg(0))
	if err != nil {
		return err
	}

	if *withBackup {
		rec, err := eng.CreateBackup(fmt.Sprintf("before poke of %s", flags.Arg(0)))
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "backup %s\n", rec.ID)
	}

	tx, err := eng.Begin()
	if err != nil {
		return err
	}

	for _, arg := range flags.Args()[1:] {
		o, v, err := parsePoke(arg)
		if err != nil {
			if rerr := eng.Rollback(tx); rerr != nil {
				return rerr
			}
			return err
		}
		if err := eng.WriteByte(tx, o, v, *confirmed); err != nil {
			if rerr := eng.Rollback(tx); rerr != nil {
				return rerr
			}
			return err
		}
	}

	if err := eng.Commit(tx); err != nil {
		return err
	}

	return eng.Save()
}

func parsePoke(arg string) (address.FileOffset, uint8, error) {
	o, v, ok := strings.Cut(arg, "=")
	if !ok {
		return 0, 0, fmt.Errorf("poke: not an offset=value pair (%s)", arg)
	}
	offset, err := strconv.ParseUint(o, 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("poke: bad offset (%s)", o)
	}
	value, err := strconv.ParseUint(v, 0, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("poke: bad value (%s)", v)
	}
	return address.FileOffset(offset), uint8(value), nil
}

func createBackup(fs afero.Fs, args []string, output io.Writer) error {
	flags := flag.NewFlagSet("backup", flag.ContinueOnError)
	description := flags.String("d", "", "description of the backup")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("backup: usage: backup [flags] <romfile>")
	}

	eng, err := newEngine(fs, flags.Arg(0))
	if err != nil {
		return err
	}

	rec, err := eng.CreateBackup(*description)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s\n", rec.ID)
	return nil
}

func restore(fs afero.Fs, args []string, output io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("restore: usage: restore <romfile> <backup-id>")
	}

	eng, err := newEngine(fs, args[0])
	if err != nil {
		return err
	}

	if err := eng.RestoreFromBackup(args[1]); err != nil {
		return err
	}
	if err := eng.Save(); err != nil {
		return err
	}

	fmt.Fprintf(output, "restored %s from %s\n", args[0], args[1])
	return nil
}

func list(fs afero.Fs, output io.Writer) error {
	m, err := backup.NewManager(fs)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.List(output)
}

// translate prints a file offset in every address space it converts to.
func translate(args []string, output io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("translate: usage: translate <file-offset>")
	}

	n, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return fmt.Errorf("translate: bad offset (%s)", args[0])
	}
	o := address.FileOffset(n)

	fmt.Fprintf(output, "%s\n", o)

	if a, err := o.RuntimeAddress(); err != nil {
		fmt.Fprintf(output, "%v\n", err)
	} else {
		fmt.Fprintf(output, "%s\n", a)
	}

	if s, err := o.SaveOffset(); err == nil {
		fmt.Fprintf(output, "%s (save template)\n", s)
		if a, err := s.RuntimeAddress(); err == nil {
			fmt.Fprintf(output, "%s (save mirror)\n", a)
		}
	}

	return nil
}

func checksum(fs afero.Fs, args []string, output io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("checksum: usage: checksum <romfile>")
	}

	img, err := cartridge.Load(fs, args[0])
	if err != nil {
		return err
	}

	complement, stored, err := img.StoredChecksum()
	if err != nil {
		return err
	}

	computed := img.Checksum()
	fmt.Fprintf(output, "stored:   %#04x (complement %#04x)\n", stored, complement)
	fmt.Fprintf(output, "computed: %#04x (complement %#04x)\n", computed, cartridge.ChecksumComplement(computed))
	if stored == computed && complement == cartridge.ChecksumComplement(computed) {
		fmt.Fprintln(output, "checksum ok")
	} else {
		fmt.Fprintln(output, "checksum mismatch (snespatch does not rewrite checksums; use your checksum tool of choice)")
	}

	return nil
}
