package argument

import (
	"errors"
	"testing"
)

func TestFlattenPreservesOrder(t *testing.T) {
	args := NewMap().
		Set("a", Int(1)).
		Set("b", List(Int(2), Int(3)))

	pairs, err := Flatten(args)
	if err != nil {
		t.Fatal(err)
	}

	want := []WirePair{{"a", "1"}, {"b", "2"}, {"b", "3"}}
	if len(pairs) != len(want) {
		t.Fatalf("expect %d pairs, got %d", len(want), len(pairs))
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pair %d: expect %v, got %v", i, want[i], pairs[i])
		}
	}
}

func TestFlattenEmptyList(t *testing.T) {
	args := NewMap().
		Set("a", List()).
		Set("b", String("x"))

	pairs, err := Flatten(args)
	if err != nil {
		t.Fatal(err)
	}

	// The empty list emits nothing; "a" must be absent from the wire.
	if len(pairs) != 1 {
		t.Fatalf("expect 1 pair, got %d", len(pairs))
	}
	if pairs[0].Name != "b" {
		t.Fatalf("expect pair for b, got %q", pairs[0].Name)
	}
}

func TestFlattenScalarRendering(t *testing.T) {
	args := NewMap().
		Set("flag", Bool(true)).
		Set("off", Bool(false)).
		Set("none", Null()).
		Set("ratio", Float(0.5)).
		Set("count", Int(-7))

	pairs, err := Flatten(args)
	if err != nil {
		t.Fatal(err)
	}

	want := []WirePair{
		{"flag", "true"},
		{"off", "false"},
		{"none", ""},
		{"ratio", "0.5"},
		{"count", "-7"},
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pair %d: expect %v, got %v", i, want[i], pairs[i])
		}
	}
}

func TestFlattenRejectsNestedList(t *testing.T) {
	args := NewMap().Set("a", List(List(Int(1))))

	_, err := Flatten(args)

	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expect EncodingError, got %v", err)
	}
}

func TestFlattenRejectsFileArgument(t *testing.T) {
	args := NewMap().Set("photo", File(FileReference{Path: "/tmp/photo.png"}))

	_, err := Flatten(args)

	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expect EncodingError, got %v", err)
	}
}

func TestMapSetReplacesInPlace(t *testing.T) {
	args := NewMap().
		Set("a", Int(1)).
		Set("b", Int(2)).
		Set("a", Int(3))

	if args.Len() != 2 {
		t.Fatalf("expect 2 entries, got %d", args.Len())
	}

	pairs, err := Flatten(args)
	if err != nil {
		t.Fatal(err)
	}
	if pairs[0] != (WirePair{"a", "3"}) {
		t.Fatalf("expect a=3 first, got %v", pairs[0])
	}
}

func TestFlattenNilMap(t *testing.T) {
	pairs, err := Flatten(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 0 {
		t.Fatalf("expect no pairs, got %d", len(pairs))
	}
}
