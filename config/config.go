// Package config loads the Cirebon command line configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/cirebon/translate"
)

var f = translate.From

// ErrUnknownKey reports a configuration key that is not understood.
type ErrUnknownKey string

func (err ErrUnknownKey) Error() string {
	return f("unknown configuration key '%v'", string(err))
}

var ErrExtension = errors.New(f("extension must start with '.'"))

// Config is the top-level TOML structure.
type Config struct {
	Verbose   bool   `toml:"verbose"`   // Log every executed instruction.
	Language  string `toml:"language"`  // BCP 47 tag for messages; empty uses the system locale.
	MaxSteps  int    `toml:"max_steps"` // 0 is unlimited.
	Extension string `toml:"extension"` // Required source file extension.
	Decorate  bool   `toml:"decorate"`  // Print "--> Register 'A': 5" instead of "5".
}

const DefaultTOML = `# Cirebon configuration

verbose = false
language = ""
max_steps = 0
extension = ".cire"
decorate = true
`

// Default returns the default configuration.
func Default() (cfg Config) {
	_, err := toml.Decode(DefaultTOML, &cfg)
	if err != nil {
		panic(err)
	}
	return
}

// Dir returns the directory for cirebon config files,
// using XDG_CONFIG_HOME or falling back to ~/.config.
func Dir() (dir string, err error) {
	dir, err = os.UserConfigDir()
	if err != nil {
		return
	}
	dir = filepath.Join(dir, "cirebon")
	return
}

// Path returns the full path to the default config.toml file.
func Path() (path string, err error) {
	dir, err := Dir()
	if err != nil {
		return
	}
	path = filepath.Join(dir, "config.toml")
	return
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (cfg Config, err error) {
	cfg = Default()

	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return
	}

	err = cfg.check(md)
	return
}

// Load decodes a TOML file over the defaults.
// A missing file yields the defaults.
func Load(path string) (cfg Config, err error) {
	cfg = Default()

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
		return
	}
	if err != nil {
		return
	}

	err = cfg.check(md)
	return
}

// check validates the decoded configuration.
func (cfg *Config) check(md toml.MetaData) (err error) {
	undecoded := md.Undecoded()
	if len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		slices.Sort(keys)
		err = ErrUnknownKey(keys[0])
		return
	}

	if len(cfg.Extension) == 0 || cfg.Extension[0] != '.' {
		err = ErrExtension
		return
	}

	return
}
