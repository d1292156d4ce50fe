package element

import "testing"

func TestNameEnumRoundTrip(t *testing.T) {
	conventions := []NamingConvention{NamingShort, NamingFile, NamingVerification}
	for e := range names {
		for _, conv := range conventions {
			name := EnumToName(e, conv)
			if name == "" {
				t.Fatalf("enum %v has empty name under %v", e, conv)
			}
			got := NameToEnum(name, conv)
			if got != e {
				t.Errorf("round trip under %v: EnumToName(%v)=%q, NameToEnum(%q)=%v, want %v", conv, e, name, name, got, e)
			}
		}
	}
}

func TestNameToEnumCaseInsensitive(t *testing.T) {
	if got := NameToEnum("MAXT", NamingShort); got != MaxT {
		t.Errorf("got %v, want MaxT", got)
	}
}

func TestNameToEnumUnknown(t *testing.T) {
	if got := NameToEnum("bogus", NamingShort); got != UNDEF {
		t.Errorf("got %v, want UNDEF", got)
	}
}

func TestEnumToNameSentinels(t *testing.T) {
	if got := EnumToName(UNDEF, NamingShort); got != "" {
		t.Errorf("UNDEF name: got %q, want \"\"", got)
	}
	if got := EnumToName(MatchAll, NamingShort); got != "" {
		t.Errorf("MatchAll name: got %q, want \"\"", got)
	}
}

func TestDescriptorForInvariant(t *testing.T) {
	for _, d := range Catalog() {
		got := DescriptorFor(d.NDFDEnum)
		if got.NDFDEnum != d.NDFDEnum {
			t.Errorf("DescriptorFor(%v).NDFDEnum = %v, want %v", d.NDFDEnum, got.NDFDEnum, d.NDFDEnum)
		}
	}
}

func TestDescriptorForUnknown(t *testing.T) {
	got := DescriptorFor(Enum(9999))
	if got.NDFDEnum != UNDEF {
		t.Errorf("DescriptorFor(unknown) = %v, want UNDEF", got.NDFDEnum)
	}
}

func TestResolveFilterVitalSurvivesEmptyUserList(t *testing.T) {
	// Scenario 6: caller [0,2,0,1,...], user [] -> vital (MaxT) plus the
	// interested-but-droppable pick (PoP12) survive; no blanket fallback
	// because a vital pick exists.
	catalog := Catalog()
	callerInterest := map[Enum]int{
		MaxT:  2,
		MinT:  0,
		PoP12: 1,
	}

	got := ResolveFilter(catalog, callerInterest, nil)

	found := map[Enum]bool{}
	for _, d := range got {
		found[d.NDFDEnum] = true
	}

	if !found[MaxT] {
		t.Errorf("expected vital pick MaxT to survive")
	}
	if !found[PoP12] {
		t.Errorf("expected interested-but-droppable pick PoP12 to survive alongside the vital pick")
	}
	if found[MinT] {
		t.Errorf("expected don't-care MinT to be dropped")
	}
	for _, d := range got {
		if d.NDFDEnum == UNDEF || d.NDFDEnum == MatchAll {
			t.Errorf("UNDEF/MatchAll leaked into resolved filter")
		}
	}
}

func TestResolveFilterSelectEverythingOnEmptyInterest(t *testing.T) {
	catalog := Catalog()
	got := ResolveFilter(catalog, nil, nil)

	wantCount := 0
	for _, d := range catalog {
		if d.NDFDEnum != UNDEF && d.NDFDEnum != MatchAll {
			wantCount++
		}
	}
	if len(got) != wantCount {
		t.Errorf("select-everything: got %d descriptors, want %d", len(got), wantCount)
	}
}

func TestResolveFilterUserListAloneGoverns(t *testing.T) {
	catalog := Catalog()
	got := ResolveFilter(catalog, nil, []Enum{Temp, Temp})

	if len(got) != 1 || got[0].NDFDEnum != Temp {
		t.Errorf("got %v, want only Temp", got)
	}
}

func TestMatchesMetaWildcardFields(t *testing.T) {
	d := ElementDescriptor{NDFDEnum: Temp, Version: Some[uint8](2)}
	meta := GridMeta{Version: 2, Center: 999, Subcenter: 999}
	if !MatchesMeta(d, meta) {
		t.Errorf("wildcard fields should match any grid meta")
	}
}

func TestMatchesMetaVersionMismatch(t *testing.T) {
	d := ElementDescriptor{NDFDEnum: Temp, Version: Some[uint8](2)}
	meta := GridMeta{Version: 1}
	if MatchesMeta(d, meta) {
		t.Errorf("version mismatch should not match")
	}
}

func TestMatchesMetaNonEdition2OnlyChecksCenterSubcenterVersion(t *testing.T) {
	d := DescriptorFor(MaxT)
	d.Version = Some[uint8](1)
	meta := GridMeta{
		Version:     1,
		Center:      7,
		Subcenter:   14,
		Category:    99, // would fail under edition 2
		Subcategory: 99,
	}
	if !MatchesMeta(d, meta) {
		t.Errorf("edition 1 should ignore category/subcategory mismatch")
	}
}

func TestReverseLookupExactMatch(t *testing.T) {
	catalog := Catalog()
	want := DescriptorFor(MaxT)
	surfaceValue, _ := want.SurfaceValue.Get()
	meta := GridMeta{
		Version: 2, Center: 7, Subcenter: 14,
		Template: 8, Category: 0, Subcategory: 4,
		NumIntervals: 1, IntervalLength: 24,
		FirstSurfaceType: 103, FirstSurfaceValue: surfaceValue,
	}
	if got := ReverseLookup(catalog, meta); got != MaxT {
		t.Errorf("ReverseLookup = %v, want MaxT", got)
	}
}

func TestReverseLookupNoMatchIsUndef(t *testing.T) {
	catalog := Catalog()
	meta := GridMeta{Version: 2, Center: 7, Subcenter: 14, Category: 250, Subcategory: 250}
	if got := ReverseLookup(catalog, meta); got != UNDEF {
		t.Errorf("ReverseLookup = %v, want UNDEF", got)
	}
}
