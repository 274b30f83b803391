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

// Package resources locates the directory where the application keeps its
// files (backups, the backup manifest, etc.)
//
// The base path is $XDG_CONFIG_HOME/snespatch, or $HOME/.config/snespatch if
// XDG_CONFIG_HOME is not set. The SNESPATCH_RESOURCES environment variable
// overrides both, which is also the mechanism tests use to keep resources
// inside a temporary or memory-backed filesystem.
package resources
