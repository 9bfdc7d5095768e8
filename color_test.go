package pgfplot

import "testing"

func TestPredefinedColors(t *testing.T) {
	tests := []struct {
		color Color
		want  string
	}{
		{Red, "red"},
		{Green, "green"},
		{Blue, "blue"},
		{Cyan, "cyan"},
		{Magenta, "magenta"},
		{Yellow, "yellow"},
		{Black, "black"},
		{Gray, "gray"},
		{White, "white"},
		{DarkGray, "darkgray"},
		{LightGray, "lightgray"},
		{Brown, "brown"},
		{Lime, "lime"},
		{Olive, "olive"},
		{Orange, "orange"},
		{Pink, "pink"},
		{Purple, "purple"},
		{Teal, "teal"},
		{Violet, "violet"},
	}
	for _, tt := range tests {
		if got := tt.color.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMix(t *testing.T) {
	tests := []struct {
		parts []Weighted
		want  string
	}{
		{nil, "rgb,255:"},
		{[]Weighted{{Red, 25}}, "rgb,255:red,25"},
		{[]Weighted{{Red, 25}, {Green, 230}}, "rgb,255:red,25;green,230"},
		{[]Weighted{{Red, 25}, {Green, 230}, {Blue, 0}}, "rgb,255:red,25;green,230;blue,0"},
	}
	for _, tt := range tests {
		if got := Mix(tt.parts...).String(); got != tt.want {
			t.Errorf("Mix = %q, want %q", got, tt.want)
		}
	}
}

func TestMixOfMix(t *testing.T) {
	inner := Mix(Weighted{Red, 100}, Weighted{Blue, 100})
	got := Mix(Weighted{inner, 50}, Weighted{White, 200}).String()
	want := "rgb,255:rgb,255:red,100;blue,100,50;white,200"
	if got != want {
		t.Errorf("Mix = %q, want %q", got, want)
	}
}

func TestBraceColor(t *testing.T) {
	if got := braceColor(Blue); got != "blue" {
		t.Errorf("braceColor = %q, want %q", got, "blue")
	}
	mixed := Mix(Weighted{Red, 25}, Weighted{Green, 230})
	if got := braceColor(mixed); got != "{rgb,255:red,25;green,230}" {
		t.Errorf("braceColor = %q", got)
	}
}
