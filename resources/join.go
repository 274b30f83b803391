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

package resources

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const applicationDir = "snespatch"

// BasePath returns the resource directory for the application, without
// touching the filesystem.
func BasePath() string {
	if p, ok := os.LookupEnv("SNESPATCH_RESOURCES"); ok {
		return p
	}

	if p, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return filepath.Join(p, applicationDir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// fall back to the working directory. a hidden directory so as not
		// to clutter
		return "." + applicationDir
	}

	return filepath.Join(home, ".config", applicationDir)
}

// JoinPath prepends the supplied path with the resource base path and creates
// all folders necessary to reach the end of the sub-path. It does not
// otherwise touch or create the file named by the final path element.
func JoinPath(fs afero.Fs, path ...string) (string, error) {
	p := filepath.Join(BasePath(), filepath.Join(path...))

	if err := fs.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", err
	}

	return p, nil
}
