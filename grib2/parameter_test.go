package grib2

import "testing"

func TestParameterIDShortName(t *testing.T) {
	cases := []struct {
		p    ParameterID
		want string
	}{
		{ParameterID{Discipline: 0, Category: 0, Number: 0}, "TMP"},
		{ParameterID{Discipline: 0, Category: 1, Number: 8}, "APCP"},
		{ParameterID{Discipline: 0, Category: 3, Number: 5}, "HGT"},
		{ParameterID{Discipline: 9, Category: 9, Number: 99}, ""},
	}
	for _, c := range cases {
		if got := c.p.ShortName(); got != c.want {
			t.Errorf("ParameterID%+v.ShortName() = %q, want %q", c.p, got, c.want)
		}
	}
}

func TestParameterIDStringUsesTables(t *testing.T) {
	p := ParameterID{Discipline: 0, Category: 0, Number: 0}
	if got := p.String(); got == "" {
		t.Error("String() should resolve a name for a well-known parameter")
	}
}
