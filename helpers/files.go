// Copyright 2026 The Vaultdump Authors
//
// Use of this source code is governed by an MIT license that is located
// in this project's root folder, and can also be found online at:
//
// https://github.com/vaultdump/vaultdump/LICENSE
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package helpers

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ReplaceFileExt will change the file extension if the filePath contains one.
// If it does not, it will add the extension.  newExt is allowed to have a period
// or not, both scenarios will work correctly
func ReplaceFileExt(filePath, newExt string) string {
	if newExt == "" {
		return filePath
	}

	var newExtPeriod string
	if !strings.HasPrefix(newExt, ".") {
		newExtPeriod = "."
	}

	ext := filepath.Ext(filePath)
	if ext == "" {
		return filePath + newExtPeriod + newExt
	}

	return filePath[:len(filePath)-len(ext)] + newExtPeriod + newExt
}

func FileExistsWithDetails(filePath string) (isFound, isDir bool, err error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, false, nil
		}

		return false, false, err

	}

	return true, info.IsDir(), nil
}

func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}

	if info.IsDir() {
		return false
	}

	return true
}

func DirExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}

	if !info.IsDir() {
		return false
	}

	return true
}

// FileSize returns the size of the file in bytes, or 0 when it cannot be
// determined.
func FileSize(filePath string) int64 {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0
	}

	return info.Size()
}

// RemoveIfExists deletes the file if present.  A missing file is not an
// error; cleanup paths call this for artifacts that may never have been
// created.
func RemoveIfExists(filePath string) error {
	err := os.Remove(filePath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func ForcePath(p string) error {
	return os.MkdirAll(p, os.ModePerm)
}
