package generate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
)

func init() {
	// index.theme files are read by desktop shells that expect key=value.
	ini.PrettyFormat = false
}

// writeIndexTheme copies the template theme file into dest with the
// variant's Name, Comment and Inherits. A missing template yields a file with
// only those three keys.
func writeIndexTheme(template, dest string, v Variant) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		Loose:               true,
		IgnoreInlineComment: true,
		IgnoreContinuation:  true,
	}, template)
	if err != nil {
		return fmt.Errorf("read theme template %s: %w", template, err)
	}
	section := cfg.Section("Icon Theme")
	section.Key("Name").SetValue(v.Name)
	section.Key("Comment").SetValue(v.Comment)
	section.Key("Inherits").SetValue(v.Inherits)

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	if err := cfg.SaveTo(filepath.Join(dest, "index.theme")); err != nil {
		return fmt.Errorf("write index.theme: %w", err)
	}
	return nil
}

// linkSizes points every size folder at scalable/. Existing entries are left
// alone.
func linkSizes(dest string, folders []string) error {
	for _, folder := range folders {
		err := os.Symlink("scalable", filepath.Join(dest, folder))
		if err != nil && !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("link %s: %w", folder, err)
		}
	}
	return nil
}
