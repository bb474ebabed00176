package mapping

import (
	"fmt"
	"os"

	"github.com/fulmenhq/iconeat/pkg/logger"
	"github.com/fulmenhq/iconeat/pkg/safeio"
)

// Validator checks mapping files on disk and rewrites them when fixing.
type Validator struct {
	log *logger.Logger
}

// NewValidator returns a validator that reports through log, or through the
// default logger when log is nil.
func NewValidator(log *logger.Logger) *Validator {
	if log == nil {
		log = logger.Default()
	}
	return &Validator{log: log}
}

// ValidateFile loads path, checks it and emits one error line per violation.
// With fix set and no duplicate keys, the normalized document replaces the
// file. Only read, parse and write failures are returned as errors.
func (v *Validator) ValidateFile(path string, fix bool) (*Result, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the user-selected mapping file
	if err != nil {
		return nil, fmt.Errorf("read mapping %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse mapping %s: %w", path, err)
	}

	v.log.Debug("Loaded mapping", logger.String("file", path), logger.Int("keys", doc.Len()))

	res := Check(doc, fix)
	for _, viol := range res.Violations {
		fields := []logger.Field{logger.String("file", path), logger.String("kind", string(viol.Kind))}
		v.log.Error(viol.Message(), fields...)
	}

	if res.Normalized == nil {
		return res, nil
	}

	out, err := Encode(res.Normalized)
	if err != nil {
		return nil, err
	}
	if err := safeio.WriteFilePreservePerms(path, out); err != nil {
		return nil, fmt.Errorf("write mapping %s: %w", path, err)
	}
	res.Rewritten = true
	v.log.Info("Mapping normalized", logger.String("file", path), logger.Int("keys", res.Normalized.Len()))
	return res, nil
}
