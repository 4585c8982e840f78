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

// Package config builds the explicit runtime configuration.  Values load
// from an optional YAML file, then environment variables override file
// values.  Nothing here is read at import time and nothing is global; a
// Config is constructed and passed into whatever needs it, so one process
// can hold several.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kirsle/configdir"
	"github.com/vaultdump/vaultdump/faults"
	"gopkg.in/yaml.v3"
)

const (
	GlobalFolderName = "Vaultdump"
	ConfigFileName   = "config.yaml"
)

// DatabaseConfig holds the connection values handed to pg_dump and psql.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// StoreConfig holds the object store values.
type StoreConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
}

// Config is the full runtime configuration for backup and restore runs.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`

	// Instance names this deployment in remote store paths.
	Instance string `yaml:"instance"`

	// Key is the URL-safe base64 encoded symmetric key.  It is never
	// persisted or logged by the pipelines.
	Key string `yaml:"key"`

	// WorkDir is where dumps and downloads are staged.  Defaults to the
	// current directory.
	WorkDir string `yaml:"workDir"`
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	configPath := configdir.LocalConfig(GlobalFolderName)
	err := configdir.MakePath(configPath)
	if err != nil {
		return "", fmt.Errorf("failed validating existence of config paths: %w", err)
	}

	return filepath.Join(configPath, ConfigFileName), nil
}

// Load reads the YAML file at path when it exists, then applies environment
// overrides.  An empty path means the default location; a missing file is
// not an error, since everything can come from the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host: "localhost",
			Port: "5432",
		},
	}

	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, faults.Wrap(faults.Config, "load config", err)
		}

		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, faults.Wrap(faults.Config, "load config",
				fmt.Errorf("failed parsing %s: %w", path, err))
		}
	} else if !os.IsNotExist(err) {
		return nil, faults.Wrap(faults.Config, "load config", err)
	}

	cfg.applyEnv()

	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}

	return cfg, nil
}

func (cfg *Config) applyEnv() {
	overrideFromEnv(&cfg.Database.Host, "DB_HOST")
	overrideFromEnv(&cfg.Database.Port, "DB_PORT")
	overrideFromEnv(&cfg.Database.Name, "DB_NAME")
	overrideFromEnv(&cfg.Database.User, "DB_USER")
	overrideFromEnv(&cfg.Database.Password, "DB_PASSWORD")
	overrideFromEnv(&cfg.Instance, "INSTANCE")
	overrideFromEnv(&cfg.Key, "ENC_KEY")
	overrideFromEnv(&cfg.WorkDir, "WORK_DIR")
	overrideFromEnv(&cfg.Store.Endpoint, "S3_ENDPOINT")
	overrideFromEnv(&cfg.Store.Region, "S3_REGION")
	overrideFromEnv(&cfg.Store.Bucket, "S3_BUCKET")
	overrideFromEnv(&cfg.Store.AccessKey, "S3_ACCESS_KEY")
	overrideFromEnv(&cfg.Store.SecretKey, "S3_SECRET_KEY")
}

func overrideFromEnv(target *string, name string) {
	if value, isSet := os.LookupEnv(name); isSet && value != "" {
		*target = value
	}
}

// Validate checks the values a full backup or restore run needs, before
// any I/O happens.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Database.Name == "":
		return faults.New(faults.Config, "validate config", "database name is required")
	case cfg.Database.User == "":
		return faults.New(faults.Config, "validate config", "database user is required")
	case cfg.Key == "":
		return faults.New(faults.Config, "validate config", "encryption key is required")
	case cfg.Instance == "":
		return faults.New(faults.Config, "validate config", "instance name is required")
	case cfg.Store.Bucket == "":
		return faults.New(faults.Config, "validate config", "store bucket is required")
	}

	return nil
}
