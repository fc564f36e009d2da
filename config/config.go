package config

import (
	"ctfe/common"
	"ctfe/util"
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/pelletier/go-toml"
	"golang.org/x/mod/semver"
)

// tomlConfig represents a target configuration as it is encoded in TOML.
type tomlConfig struct {
	Name        string     `toml:"name"`
	CtfeVersion string     `toml:"ctfe-version"`
	Target      tomlTarget `toml:"target"`
	Lexer       tomlLexer  `toml:"lexer"`
}

type tomlTarget struct {
	OS          string `toml:"os"`
	Arch        string `toml:"arch"`
	PointerSize int    `toml:"pointer-size"`
}

type tomlLexer struct {
	MaxLexeme int `toml:"max-lexeme"`
}

// Config is a validated target configuration.
type Config struct {
	// Name is the name of the project.  It may be empty.
	Name string

	// The target operating system and architecture.
	OS, Arch string

	// PointerSize is the size of a pointer on the target in bytes.
	PointerSize uint64

	// MaxLexemeLen is the maximum length of a single lexeme in bytes.
	MaxLexemeLen int

	// Warnings lists the problems found in the configuration which do not
	// prevent it from being used.
	Warnings []string
}

// archNames lists the supported architectures.
var archNames = []string{"i386", "amd64", "arm", "arm64", "wasm32"}

// archPointerSizes is the default pointer size of each architecture.
var archPointerSizes = map[string]uint64{
	"i386":   4,
	"amd64":  8,
	"arm":    4,
	"arm64":  8,
	"wasm32": 4,
}

// validPointerSizes lists the pointer sizes that may be configured explicitly.
var validPointerSizes = []int{1, 2, 4, 8}

// Default returns the configuration used when no configuration file is given.
func Default() *Config {
	return &Config{
		OS:           "linux",
		Arch:         "amd64",
		PointerSize:  common.DefaultPointerSize,
		MaxLexemeLen: common.DefaultMaxLexemeLen,
	}
}

// Load loads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	return Parse(buff)
}

// Parse decodes and validates the contents of a configuration file.  Fields
// which are not set take their default values.
func Parse(buff []byte) (*Config, error) {
	tc := &tomlConfig{}
	if err := toml.Unmarshal(buff, tc); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg := Default()
	if err := cfg.apply(tc); err != nil {
		return nil, err
	}

	return cfg, nil
}

// apply validates the decoded configuration and moves it into cfg.
func (cfg *Config) apply(tc *tomlConfig) error {
	if tc.Name != "" && !isValidIdentifier(tc.Name) {
		return fmt.Errorf("project name `%s` must be a valid identifier", tc.Name)
	}

	cfg.Name = tc.Name

	if err := cfg.checkVersion(tc.CtfeVersion); err != nil {
		return err
	}

	if tc.Target.OS != "" {
		cfg.OS = tc.Target.OS
	}

	if tc.Target.Arch != "" {
		if !util.Contains(archNames, tc.Target.Arch) {
			return fmt.Errorf("unsupported target architecture `%s`", tc.Target.Arch)
		}

		cfg.Arch = tc.Target.Arch
		cfg.PointerSize = archPointerSizes[tc.Target.Arch]
	}

	if tc.Target.PointerSize != 0 {
		if !util.Contains(validPointerSizes, tc.Target.PointerSize) {
			return fmt.Errorf("invalid pointer size %d: must be 1, 2, 4 or 8", tc.Target.PointerSize)
		}

		cfg.PointerSize = uint64(tc.Target.PointerSize)
	}

	switch {
	case tc.Lexer.MaxLexeme < 0:
		return errors.New("maximum lexeme length must not be negative")
	case tc.Lexer.MaxLexeme > 0:
		cfg.MaxLexemeLen = tc.Lexer.MaxLexeme
	}

	return nil
}

// checkVersion compares the version a configuration was written for with the
// current version.
func (cfg *Config) checkVersion(version string) error {
	if version == "" {
		cfg.Warnings = append(cfg.Warnings, "missing ctfe-version")
		return nil
	}

	v, current := "v"+version, "v"+common.Version
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid ctfe-version `%s`", version)
	}

	if semver.MajorMinor(v) != semver.MajorMinor(current) {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf(
			"config was written for ctfe v%s but this is ctfe v%s",
			version,
			common.Version,
		))
	}

	return nil
}

// TargetTriple returns the LLVM target triple of the configured target.
func (cfg *Config) TargetTriple() string {
	arch := map[string]string{
		"i386":   "i386",
		"amd64":  "x86_64",
		"arm":    "arm",
		"arm64":  "aarch64",
		"wasm32": "wasm32",
	}[cfg.Arch]

	switch cfg.OS {
	case "linux":
		return arch + "-unknown-linux-gnu"
	case "windows":
		return arch + "-pc-windows-msvc"
	case "darwin":
		return arch + "-apple-darwin"
	case "wasi":
		return arch + "-unknown-wasi"
	default:
		return arch + "-unknown-" + cfg.OS
	}
}

// isValidIdentifier returns whether s is a valid project name.
func isValidIdentifier(s string) bool {
	for i, c := range s {
		if c == '_' || unicode.IsLetter(c) || (i > 0 && unicode.IsDigit(c)) {
			continue
		}

		return false
	}

	return s != ""
}
