package match

import "testing"

func TestValueKinds(t *testing.T) {
	n := Numeric(42.0)
	if n.Kind() != KindNumeric {
		t.Errorf("Numeric: got kind %v", n.Kind())
	}
	if v, ok := n.Float(); !ok || v != 42.0 {
		t.Errorf("Numeric.Float() = (%v, %v)", v, ok)
	}
	if _, ok := n.String(); ok {
		t.Errorf("Numeric.String() should not be ok")
	}

	s := Text("Chance and Isolated")
	if s.Kind() != KindText {
		t.Errorf("Text: got kind %v", s.Kind())
	}
	if v, ok := s.String(); !ok || v != "Chance and Isolated" {
		t.Errorf("Text.String() = (%q, %v)", v, ok)
	}
	if _, ok := s.Float(); ok {
		t.Errorf("Text.Float() should not be ok")
	}

	m := Missing(-9999, "")
	if m.Kind() != KindMissing {
		t.Errorf("Missing: got kind %v", m.Kind())
	}
	if v, ok := m.Float(); !ok || v != -9999 {
		t.Errorf("Missing.Float() = (%v, %v)", v, ok)
	}
	if _, ok := m.String(); ok {
		t.Errorf("Missing with empty repr should not surface a string")
	}

	mr := Missing(17, "17")
	if v, ok := mr.String(); !ok || v != "17" {
		t.Errorf("Missing with repr: String() = (%q, %v)", v, ok)
	}
}

func TestAccumulatorAppendOrderPreserved(t *testing.T) {
	acc := NewAccumulator()
	acc.Append(Match{Unit: "F"})
	acc.Append(Match{Unit: "C"})
	acc.Append(Match{Unit: "K"})

	if acc.Len() != 3 {
		t.Fatalf("got Len()=%d, want 3", acc.Len())
	}
	all := acc.Matches()
	units := []string{"F", "C", "K"}
	for i, want := range units {
		if all[i].Unit != want {
			t.Errorf("match %d: got unit %q, want %q", i, all[i].Unit, want)
		}
	}
}

func TestAccumulatorEmpty(t *testing.T) {
	acc := NewAccumulator()
	if acc.Len() != 0 {
		t.Errorf("got Len()=%d, want 0", acc.Len())
	}
	if len(acc.Matches()) != 0 {
		t.Errorf("got non-empty Matches() on fresh accumulator")
	}
}
