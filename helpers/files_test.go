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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceFileExt(t *testing.T) {
	type TestVals struct {
		Name      string
		InputPath string
		NewExt    string
		Expects   string
	}

	tests := []TestVals{
		{
			Name:      "FileNameAndNewExtHasPeriod",
			InputPath: "file.old",
			NewExt:    ".new",
			Expects:   "file.new",
		},
		{
			Name:      "FileNameAndNewExtHasNoPeriod",
			InputPath: "file.old",
			NewExt:    "new",
			Expects:   "file.new",
		},
		{
			Name:      "FileNameWithNoExtAndNewExtHasPeriod",
			InputPath: "file",
			NewExt:    ".new",
			Expects:   "file.new",
		},
		{
			Name:      "FileNameWithNoExtAndNewExtHasNoPeriod",
			InputPath: "file",
			NewExt:    "new",
			Expects:   "file.new",
		},
		{
			Name:      "FilePathWithMultiplePeriodsAndNewExtHasPeriod",
			InputPath: "/path/subpath/file.something.old",
			NewExt:    ".new",
			Expects:   "/path/subpath/file.something.new",
		},
		{
			Name:      "FilePathWithMultiplePeriodsAndNewExtHasNoPeriod",
			InputPath: "/path/subpath/file.something.old",
			NewExt:    "new",
			Expects:   "/path/subpath/file.something.new",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			value := ReplaceFileExt(test.InputPath, test.NewExt)
			assert.Equal(t, test.Expects, value)
		})
	}
}

func TestFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sized.bin")
	assert.Nil(t, os.WriteFile(path, make([]byte, 1234), 0o644))

	assert.Equal(t, int64(1234), FileSize(path))
	assert.Zero(t, FileSize(path+".missing"))
}

func TestRemoveIfExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "victim.txt")
	assert.Nil(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.Nil(t, RemoveIfExists(path))
	assert.False(t, FileExists(path))

	// Removing again is not an error.
	assert.Nil(t, RemoveIfExists(path))
}
