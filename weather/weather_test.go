package weather

import "testing"

func TestDecodeRawRoundTrip(t *testing.T) {
	table := []string{"Chc|L|R^", "Def:Hazy^"}
	for k, want := range table {
		if got := Decode(float64(k), table, Raw); got != want {
			t.Errorf("Decode(raw, %d) = %q, want %q", k, got, want)
		}
	}
}

func TestDecodeOutOfRangeIsDecimal(t *testing.T) {
	table := []string{"a", "b"}
	if got := Decode(5, table, Raw); got != "5" {
		t.Errorf("got %q, want \"5\"", got)
	}
	if got := Decode(-1, table, English); got != "-1" {
		t.Errorf("got %q, want \"-1\"", got)
	}
}

func TestTokensThreeFieldGroupScenario7(t *testing.T) {
	got := Tokens("R1|L|R^")
	want := []string{"R1", "L", "R"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokensMultipleGroups(t *testing.T) {
	got := Tokens("Chc|L^Def|R^")
	want := []string{"Chc", "L", "Def", "R"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEnglishJoinsThreeWords(t *testing.T) {
	got := english("Chc|Lkly|SVR")
	want := "Chance, Likely and Severe"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEnglishSingleWord(t *testing.T) {
	got := english("Iso")
	if got != "Isolated" {
		t.Errorf("got %q, want %q", got, "Isolated")
	}
}

func TestEnglishNoWeatherOnEmptyParse(t *testing.T) {
	got := english("")
	if got != "No Weather" {
		t.Errorf("got %q, want \"No Weather\"", got)
	}
}

func TestEnglishUnknownCodePassesThrough(t *testing.T) {
	got := english("XYZ")
	if got != "XYZ" {
		t.Errorf("got %q, want passthrough %q", got, "XYZ")
	}
}

func TestSimpleIsWordCount(t *testing.T) {
	got := simple("Chc|Lkly|SVR")
	if got != "3" {
		t.Errorf("got %q, want \"3\"", got)
	}
}

func TestDecodeModeDispatch(t *testing.T) {
	table := []string{"Chc|Iso"}
	if got := Decode(0, table, English); got != "Chance and Isolated" {
		t.Errorf("got %q", got)
	}
	if got := Decode(0, table, Simple); got != "2" {
		t.Errorf("got %q", got)
	}
	if got := Decode(0, table, Raw); got != "Chc|Iso" {
		t.Errorf("got %q", got)
	}
}
