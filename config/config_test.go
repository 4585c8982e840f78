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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultdump/vaultdump/faults"
)

const testYAML = `
database:
  host: db.internal
  port: "5433"
  name: datahub
  user: backup
  password: filepass
instance: staging
key: filekey
store:
  endpoint: https://s3.internal
  bucket: backups
  accessKey: AK
  secretKey: SK
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.Nil(t, os.WriteFile(path, []byte(testYAML), 0o600))
	return path
}

func TestLoadFromYAML(t *testing.T) {
	cfg, err := Load(writeTestConfig(t))
	require.Nil(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "5433", cfg.Database.Port)
	assert.Equal(t, "datahub", cfg.Database.Name)
	assert.Equal(t, "staging", cfg.Instance)
	assert.Equal(t, "backups", cfg.Store.Bucket)
	assert.Equal(t, ".", cfg.WorkDir)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("DB_HOST", "env.internal")
	t.Setenv("DB_PASSWORD", "envpass")
	t.Setenv("ENC_KEY", "envkey")

	cfg, err := Load(writeTestConfig(t))
	require.Nil(t, err)

	assert.Equal(t, "env.internal", cfg.Database.Host)
	assert.Equal(t, "envpass", cfg.Database.Password)
	assert.Equal(t, "envkey", cfg.Key)

	// Untouched values keep their file settings.
	assert.Equal(t, "datahub", cfg.Database.Name)
}

func TestEmptyEnvValueDoesNotOverride(t *testing.T) {
	t.Setenv("DB_HOST", "")

	cfg, err := Load(writeTestConfig(t))
	require.Nil(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadMissingFileUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("DB_NAME", "envdb")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Nil(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "envdb", cfg.Database.Name)
}

func TestLoadBadYAMLIsConfigFault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.Nil(t, os.WriteFile(path, []byte("database: [not a mapping"), 0o600))

	_, err := Load(path)
	assert.NotNil(t, err)
	assert.True(t, faults.Is(err, faults.Config))
}

func TestValidate(t *testing.T) {
	cfg, err := Load(writeTestConfig(t))
	require.Nil(t, err)
	assert.Nil(t, cfg.Validate())

	cfg.Key = ""
	err = cfg.Validate()
	assert.NotNil(t, err)
	assert.True(t, faults.Is(err, faults.Config))

	cfg.Key = "restored"
	cfg.Database.Name = ""
	assert.NotNil(t, cfg.Validate())
}

// TestMultipleConfigsInOneProcess ensures nothing is shared or global.
func TestMultipleConfigsInOneProcess(t *testing.T) {
	first, err := Load(writeTestConfig(t))
	require.Nil(t, err)

	t.Setenv("INSTANCE", "prod")
	second, err := Load(writeTestConfig(t))
	require.Nil(t, err)

	assert.Equal(t, "staging", first.Instance)
	assert.Equal(t, "prod", second.Instance)
}
