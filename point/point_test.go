package point

import (
	"strings"
	"testing"
)

func TestParseScenario5(t *testing.T) {
	input := "KIAD, 38.95, -77.45\n# skip\n-90, 0"
	pts, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2", len(pts))
	}
	if pts[0].Label != "KIAD" || pts[0].Lat != 38.95 || pts[0].Lon != -77.45 {
		t.Errorf("point 0 = %+v", pts[0])
	}
	if pts[1].Label != "(-90.000000,0.000000)" {
		t.Errorf("point 1 label = %q, want synthesized label", pts[1].Label)
	}
	if pts[1].Lat != -90 || pts[1].Lon != 0 {
		t.Errorf("point 1 coords = (%v, %v)", pts[1].Lat, pts[1].Lon)
	}
}

func TestParseWithOutFile(t *testing.T) {
	pts, err := Parse(strings.NewReader("KIAD, 38.95, -77.45, out.txt"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if pts[0].OutFile != "out.txt" {
		t.Errorf("got outfile %q, want \"out.txt\"", pts[0].OutFile)
	}
}

func TestParseBadlyFormedLineFailsWholeCall(t *testing.T) {
	_, err := Parse(strings.NewReader("KIAD, 38.95, -77.45\nbogus\n-90, 0"))
	if err == nil {
		t.Fatalf("expected error on malformed single-field line")
	}
}

func TestParseBlankLinesIgnored(t *testing.T) {
	pts, err := Parse(strings.NewReader("\nKIAD, 38.95, -77.45\n\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(pts) != 1 {
		t.Errorf("got %d points, want 1", len(pts))
	}
}

func TestParseCommentOnlyAtColumnOne(t *testing.T) {
	pts, err := Parse(strings.NewReader("#comment\nKIAD, 38.95, -77.45"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(pts) != 1 {
		t.Errorf("got %d points, want 1 (comment line dropped)", len(pts))
	}
}
