package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for iconeat
type Config struct {
	Mapping    MappingConfig    `mapstructure:"mapping"`
	Sync       SyncConfig       `mapstructure:"sync"`
	Duplicates DuplicatesConfig `mapstructure:"duplicates"`
	Search     SearchConfig     `mapstructure:"search"`
	Generate   GenerateConfig   `mapstructure:"generate"`
}

// MappingConfig locates the icon mapping document
type MappingConfig struct {
	File string `mapstructure:"file"`
}

// SyncConfig holds the folder containing the black/ and white/ icon sets
type SyncConfig struct {
	Folder string `mapstructure:"folder"`
}

// DuplicatesConfig holds the variant trees compared by the duplicates check
type DuplicatesConfig struct {
	Src    string `mapstructure:"src"`
	Target string `mapstructure:"target"`
}

// SearchConfig lists where installed icon themes and desktop files live
type SearchConfig struct {
	IconRoots    []string `mapstructure:"icon_roots"`
	DesktopRoots []string `mapstructure:"desktop_roots"`
	// HicolorRoot has no index.theme and is scanned by folder name.
	HicolorRoot string `mapstructure:"hicolor_root"`
}

// GenerateConfig holds theme generation settings
type GenerateConfig struct {
	ConfigFile    string   `mapstructure:"config_file"`
	ThemeTemplate string   `mapstructure:"theme_template"`
	SizeFolders   []string `mapstructure:"size_folders"`
	Workers       int      `mapstructure:"workers"`
}

// DefaultSizeFolders are linked to scalable/ in every generated variant.
var DefaultSizeFolders = []string{
	"8x8",
	"16x16", "16x16@2x",
	"18x18", "18x18@2x",
	"22x22", "22x22@2x",
	"24x24", "24x24@2x",
	"32x32", "32x32@2x",
	"42x42",
	"48x48", "48x48@2x",
	"64x64", "64x64@2x",
	"84x84",
	"96x96",
	"128x128",
}

var defaultConfig = Config{
	Mapping: MappingConfig{File: "mapping.yaml"},
	Sync:    SyncConfig{Folder: "icons"},
	Search: SearchConfig{
		IconRoots:    []string{"/usr/share/icons", "~/.local/share/icons"},
		DesktopRoots: []string{"/usr/share/applications", "~/.local/share/applications"},
		HicolorRoot:  "~/.local/share/icons/hicolor",
	},
	Generate: GenerateConfig{
		ConfigFile:    "generate.toml",
		ThemeTemplate: "index.theme",
		SizeFolders:   DefaultSizeFolders,
		Workers:       4,
	},
}

// Default returns a copy of the built-in configuration
func Default() Config {
	c := defaultConfig
	c.Search.IconRoots = append([]string(nil), defaultConfig.Search.IconRoots...)
	c.Search.DesktopRoots = append([]string(nil), defaultConfig.Search.DesktopRoots...)
	c.Generate.SizeFolders = append([]string(nil), defaultConfig.Generate.SizeFolders...)
	return c
}

// Binding ties a command flag to a configuration key.
type Binding struct {
	Key  string
	Flag *pflag.Flag
}

// ProjectConfigFile is looked up in the working directory.
const ProjectConfigFile = "iconeat.yaml"

// UserConfigPath returns the per-user config file, or "" when no user config
// directory is known.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "iconeat", "config.yaml")
}

// LoadConfig loads configuration from defaults, the user config file, an
// iconeat.yaml in the working directory (or only the explicit path),
// ICONEAT_* environment variables and changed flags, in increasing order of
// precedence.
func LoadConfig(path string, bindings ...Binding) (*Config, error) {
	v := viper.New()

	v.SetDefault("mapping.file", defaultConfig.Mapping.File)
	v.SetDefault("sync.folder", defaultConfig.Sync.Folder)
	v.SetDefault("duplicates.src", defaultConfig.Duplicates.Src)
	v.SetDefault("duplicates.target", defaultConfig.Duplicates.Target)
	v.SetDefault("search.icon_roots", defaultConfig.Search.IconRoots)
	v.SetDefault("search.desktop_roots", defaultConfig.Search.DesktopRoots)
	v.SetDefault("search.hicolor_root", defaultConfig.Search.HicolorRoot)
	v.SetDefault("generate.config_file", defaultConfig.Generate.ConfigFile)
	v.SetDefault("generate.theme_template", defaultConfig.Generate.ThemeTemplate)
	v.SetDefault("generate.size_folders", defaultConfig.Generate.SizeFolders)
	v.SetDefault("generate.workers", defaultConfig.Generate.Workers)

	v.SetEnvPrefix("ICONEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range bindings {
		if b.Flag == nil {
			continue
		}
		if err := v.BindPFlag(b.Key, b.Flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", b.Flag.Name, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		// User settings first, the project file in the working directory wins.
		for _, layer := range []string{UserConfigPath(), ProjectConfigFile} {
			if layer == "" {
				continue
			}
			if _, err := os.Stat(layer); err != nil {
				continue
			}
			v.SetConfigFile(layer)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", layer, err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if config.Generate.Workers < 1 {
		return nil, fmt.Errorf("generate.workers must be at least 1, got %d", config.Generate.Workers)
	}

	return &config, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// ExpandHomeAll applies ExpandHome to every path.
func ExpandHomeAll(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = ExpandHome(p)
	}
	return out
}
