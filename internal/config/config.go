// Package config loads the optional archiva-cli configuration file.
//
// The file is TOML and every key is optional:
//
//	host = "https://archiva.example.com"
//	user = "deployer"
//	password = "secret"
//	set_referer = true
//	timeout = "45s"
//	verbose_level = "w"
//
// Command-line flags take precedence over values read here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "archiva-cli"

// File is the decoded configuration file. Zero values mean "not set".
type File struct {
	Host         string `toml:"host"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	SetReferer   bool   `toml:"set_referer"`
	Timeout      string `toml:"timeout"`
	VerboseLevel string `toml:"verbose_level"`

	// timeout is Timeout parsed by Load.
	timeout time.Duration
}

// TimeoutDuration returns the parsed timeout, or zero if unset.
func (f *File) TimeoutDuration() time.Duration { return f.timeout }

// DefaultPath returns the configuration file location following the XDG
// convention (~/.config/archiva-cli/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path. A missing file yields an empty File unless
// explicit is set, in which case it is an error.
func Load(path string, explicit bool) (*File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return &File{}, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return nil, fmt.Errorf("load config %s: timeout: %w", path, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("load config %s: timeout must be positive, got %s", path, f.Timeout)
		}
		f.timeout = d
	}
	return &f, nil
}
