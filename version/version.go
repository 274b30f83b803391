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

// Package version records the version of the program.
package version

import "runtime/debug"

// The name to use when referring to the application.
const ApplicationName = "snespatch"

// set with the -ldflags option at build time. empty when the program was not
// built through the makefile
var number string

// Version returns the version string and whether this is a numbered release
// version. An unnumbered build is identified by its vcs revision when the
// build information carries one.
func Version() (string, bool) {
	if number != "" {
		return number, true
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "local", false
	}

	var revision string
	var modified bool
	for _, v := range info.Settings {
		switch v.Key {
		case "vcs.revision":
			revision = v.Value
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if revision == "" {
		return "unreleased", false
	}
	if modified {
		revision += "+dirty"
	}

	return revision, false
}
