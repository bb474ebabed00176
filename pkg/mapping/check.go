package mapping

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies the invariant a violation breaks.
type Kind string

const (
	KindDuplicateKeys     Kind = "duplicate-keys"
	KindUnsortedKeys      Kind = "unsorted-keys"
	KindDuplicateValues   Kind = "duplicate-values"
	KindUnsortedValues    Kind = "unsorted-values"
	KindCrossKeyCollision Kind = "cross-key-collision"
)

// Fixable reports whether normalization repairs violations of this kind.
func (k Kind) Fixable() bool {
	switch k {
	case KindUnsortedKeys, KindDuplicateValues, KindUnsortedValues:
		return true
	default:
		return false
	}
}

// Violation is a single broken invariant.
type Violation struct {
	Kind Kind `json:"kind"`
	// Key is the entry the violation was found in; for collisions it is the
	// key that claimed the value first.
	Key string `json:"key,omitempty"`
	// OtherKey is the later key of a cross-key collision.
	OtherKey string   `json:"other_key,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// Message renders the violation as a single diagnostic line.
func (v Violation) Message() string {
	switch v.Kind {
	case KindDuplicateKeys:
		return fmt.Sprintf("The following keys are duplicated: %s", quoteList(v.Values))
	case KindUnsortedKeys:
		return "Keys are not sorted"
	case KindDuplicateValues:
		return fmt.Sprintf("The entry '%s' has these duplicate values: %s", v.Key, quoteList(v.Values))
	case KindUnsortedValues:
		return fmt.Sprintf("The entry '%s' has unsorted values", v.Key)
	case KindCrossKeyCollision:
		return fmt.Sprintf("The value '%s' is in multiple keys: %s and %s", strings.Join(v.Values, ", "), v.Key, v.OtherKey)
	default:
		return string(v.Kind)
	}
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Result is the outcome of checking a document.
type Result struct {
	Valid      bool
	Fix        bool
	Violations []Violation
	// Normalized is set only when the fix path ran, i.e. fixing was requested
	// and no duplicate keys were found.
	Normalized *Document
	// Rewritten records that Normalized was persisted over the source.
	Rewritten bool
}

// Has reports whether any violation of kind was recorded.
func (r *Result) Has(kind Kind) bool {
	return slices.ContainsFunc(r.Violations, func(v Violation) bool { return v.Kind == kind })
}

// Count returns the number of violations of kind.
func (r *Result) Count(kind Kind) int {
	n := 0
	for _, v := range r.Violations {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

// Check runs the invariant pipeline over doc:
//
//	duplicate keys -> key order -> per-entry values -> cross-key collisions
//
// Duplicate keys stop the pipeline and are never fixed. Unsorted keys stop it
// unless fix is set. With fix set and no duplicate keys, the result carries a
// normalized document and is reported valid even when collisions were found,
// since normalization never moves values between keys.
func Check(doc *Document, fix bool) *Result {
	res := &Result{Valid: true, Fix: fix}

	if dupes := repeated(doc.RawKeys()); len(dupes) > 0 {
		res.add(Violation{Kind: KindDuplicateKeys, Values: dupes})
		return res
	}

	keys := doc.Keys()
	if !slices.IsSorted(keys) {
		res.add(Violation{Kind: KindUnsortedKeys})
		if !fix {
			return res
		}
	}

	for _, key := range keys {
		values := doc.Values(key)
		if dupes := repeated(values); len(dupes) > 0 {
			res.add(Violation{Kind: KindDuplicateValues, Key: key, Values: dupes})
		}
		if !slices.IsSorted(values) {
			res.add(Violation{Kind: KindUnsortedValues, Key: key})
		}
	}

	owners := make(map[string]string)
	for _, key := range keys {
		for _, value := range doc.Values(key) {
			owner, seen := owners[value]
			if !seen {
				owners[value] = key
				continue
			}
			if owner != key {
				res.add(Violation{Kind: KindCrossKeyCollision, Key: owner, OtherKey: key, Values: []string{value}})
			}
		}
	}

	if fix {
		res.Normalized = Normalize(doc)
		res.Valid = true
	}
	return res
}

func (r *Result) add(v Violation) {
	r.Violations = append(r.Violations, v)
	r.Valid = false
}

// repeated returns each item that occurs more than once, in the order of its
// first repetition.
func repeated(items []string) []string {
	seen := make(map[string]int, len(items))
	var dupes []string
	for _, item := range items {
		seen[item]++
		if seen[item] == 2 {
			dupes = append(dupes, item)
		}
	}
	return dupes
}
