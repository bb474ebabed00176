package generate

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Variant describes one generated theme. Each TOML table is keyed by the
// destination directory it is written to.
type Variant struct {
	Destination string   `toml:"-"`
	Name        string   `toml:"name" validate:"required"`
	Comment     string   `toml:"comment"`
	Inherits    string   `toml:"inherits"`
	Overwrite   bool     `toml:"overwrite"`
	SrcColor    string   `toml:"src_color" validate:"required"`
	Color       string   `toml:"color" validate:"required"`
	LineWeight  int      `toml:"line_weight" validate:"min=1"`
	SrcPaths    []string `toml:"src_paths" validate:"min=1,dive,required"`
}

// LoadConfig reads and validates a generator config file.
func LoadConfig(path string) ([]Variant, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is an explicit CLI/config argument
	if err != nil {
		return nil, fmt.Errorf("read generator config: %w", err)
	}
	variants, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return variants, nil
}

// ParseConfig decodes generator tables, sorted by destination.
func ParseConfig(data []byte) ([]Variant, error) {
	tables := map[string]Variant{}
	if err := toml.Unmarshal(data, &tables); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("invalid TOML at %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	if len(tables) == 0 {
		return nil, errors.New("no variants configured")
	}

	variants := make([]Variant, 0, len(tables))
	for dest, v := range tables {
		v.Destination = dest
		if err := validate.Struct(v); err != nil {
			return nil, fmt.Errorf("variant %q: %s", dest, describe(err))
		}
		variants = append(variants, v)
	}
	sort.Slice(variants, func(i, j int) bool {
		return variants[i].Destination < variants[j].Destination
	})
	return variants, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if f, ok := tomlNames[field]; ok {
			field = f
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

var tomlNames = map[string]string{
	"Name":       "name",
	"SrcColor":   "src_color",
	"Color":      "color",
	"LineWeight": "line_weight",
	"SrcPaths":   "src_paths",
}
