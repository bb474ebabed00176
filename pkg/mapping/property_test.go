package mapping

import (
	"slices"
	"testing"

	"pgregory.net/rapid"
)

var (
	keyGen   = rapid.SampledFrom([]string{"apps/steam", "apps/firefox", "places/home", "status/battery", "devices/phone", "10", "yes"})
	valueGen = rapid.SampledFrom([]string{"com.valvesoftware.Steam", "firefox", "org.gnome.Nautilus", "steam", "user-home", "true", "7"})
)

func drawDocument(t *rapid.T) *Document {
	doc := NewDocument()
	keys := rapid.SliceOfDistinct(keyGen, rapid.ID[string]).Draw(t, "keys")
	for _, k := range keys {
		doc.Set(k, rapid.SliceOfN(valueGen, 0, 6).Draw(t, "values:"+k))
	}
	return doc
}

func TestProperty_NormalizedIsCanonical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := drawDocument(t)

		res := Check(doc, true)
		if !res.Valid || res.Normalized == nil {
			t.Fatalf("fix without duplicate keys must succeed: %+v", res.Violations)
		}

		n := res.Normalized
		if !slices.IsSorted(n.Keys()) {
			t.Fatalf("keys not sorted: %v", n.Keys())
		}
		for _, k := range n.Keys() {
			values := n.Values(k)
			if !slices.IsSorted(values) {
				t.Fatalf("values of %s not sorted: %v", k, values)
			}
			if len(slices.Compact(slices.Clone(values))) != len(values) {
				t.Fatalf("values of %s not unique: %v", k, values)
			}
		}

		again := Check(n, false)
		for _, v := range again.Violations {
			if v.Kind != KindCrossKeyCollision {
				t.Fatalf("normalized document still violates %s", v.Kind)
			}
		}
	})
}

func TestProperty_FixIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := drawDocument(t)

		once := Check(doc, true).Normalized
		twice := Check(once, true).Normalized
		if !once.Equal(twice) {
			t.Fatalf("normalization not idempotent")
		}

		a, err := Encode(once)
		if err != nil {
			t.Fatal(err)
		}
		parsed, err := Parse(a)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Encode(Check(parsed, true).Normalized)
		if err != nil {
			t.Fatal(err)
		}
		if string(a) != string(b) {
			t.Fatalf("re-encoding changed bytes:\n%s\n---\n%s", a, b)
		}
	})
}

func TestProperty_CleanDocumentsStayValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := Normalize(drawDocument(t))
		res := Check(doc, false)
		for _, v := range res.Violations {
			if v.Kind != KindCrossKeyCollision {
				t.Fatalf("normalized document reported %s", v.Kind)
			}
		}
		if res.Valid == res.Has(KindCrossKeyCollision) {
			t.Fatalf("validity %v disagrees with collisions %+v", res.Valid, res.Violations)
		}
	})
}
