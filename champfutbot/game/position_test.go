package game

import "testing"

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in     string
		want   Position
		wantOK bool
	}{
		{in: "GK", want: PositionGK, wantOK: true},
		{in: "gk", want: PositionGK, wantOK: true},
		{in: " df ", want: PositionDF, wantOK: true},
		{in: "MF", want: PositionMF, wantOK: true},
		{in: "FW", want: PositionFW, wantOK: true},
		{in: "ST", wantOK: false},
		{in: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePosition(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParsePosition(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParsePosition(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPositionCaps_TotalElevenPlayers(t *testing.T) {
	total := 0
	for _, pos := range Positions {
		total += PositionCaps[pos]
	}
	if total != 11 {
		t.Errorf("position caps sum to %d, want a full eleven", total)
	}
}
