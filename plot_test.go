package pgfplot

import "testing"

func TestType2DString(t *testing.T) {
	tests := []struct {
		typ  Type2D
		want string
	}{
		{SharpPlot, "sharp plot"},
		{Smooth(0.55), "smooth, tension=0.55"},
		{ConstLeft, "const plot mark left"},
		{ConstRight, "const plot mark right"},
		{ConstMid, "const plot mark mid"},
		{JumpLeft, "jump mark left"},
		{JumpRight, "jump mark right"},
		{JumpMid, "jump mark mid"},
		{XBar(19.5, 2), "xbar, bar width=19.5, bar shift=2"},
		{YBar(0.5, -1.5), "ybar, bar width=0.5, bar shift=-1.5"},
		{XComb, "xcomb"},
		{YComb, "ycomb"},
		{OnlyMarks, "only marks"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestErrorKeys(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{XErrorKey(ErrorAbsolute), "error bars/x explicit"},
		{XErrorKey(ErrorRelative), "error bars/x explicit relative"},
		{YErrorKey(ErrorAbsolute), "error bars/y explicit"},
		{YErrorKey(ErrorRelative), "error bars/y explicit relative"},
		{XErrorDirectionKey(ErrorNone), "error bars/x dir=none"},
		{XErrorDirectionKey(ErrorPlus), "error bars/x dir=plus"},
		{XErrorDirectionKey(ErrorMinus), "error bars/x dir=minus"},
		{XErrorDirectionKey(ErrorBoth), "error bars/x dir=both"},
		{YErrorDirectionKey(ErrorBoth), "error bars/y dir=both"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMarkerString(t *testing.T) {
	tests := []struct {
		marker Marker
		want   string
	}{
		{NewMarker(MarkO), "mark=o, mark options={}"},
		{NewMarker(MarkOFilled), "mark=*, mark options={}"},
		{NewMarker(MarkText("p")), "mark=text, text mark=p, mark options={}"},
		{
			NewMarker(MarkSquareFilled, MarkFill(Blue), MarkDraw(Black), MarkScale(2)),
			"mark=square*, mark options={fill=blue, draw=black, scale=2}",
		},
		{
			NewMarker(MarkO, MarkFill(Mix(Weighted{Red, 25}, Weighted{Green, 230}))),
			"mark=o, mark options={fill={rgb,255:red,25;green,230}}",
		},
	}
	for _, tt := range tests {
		if got := tt.marker.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPlotString(t *testing.T) {
	plot := NewPlot2D()
	if got := plot.String(); got != "\t\\addplot[] coordinates {\n\t};" {
		t.Fatalf("empty plot = %q", got)
	}

	plot.AddKey(TypeKey(SharpPlot))
	plot.AppendCoordinate(XY(1, -1))
	plot.AppendCoordinate(XY(2, 4).WithYError(0.5))
	want := "\t\\addplot[\n" +
		"\t\tsharp plot,\n" +
		"\t] coordinates {\n" +
		"\t\t(1,-1)\n" +
		"\t\t(2,4)\t+- (0,0.5)\n" +
		"\t};"
	if got := plot.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPlot3DString(t *testing.T) {
	plot := NewPlot3D()
	plot.AppendCoordinate(XYZ(1, 2, 3))
	want := "\t\\addplot3[] coordinates {\n\t\t(1,2,3)\n\t};"
	if got := plot.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPlotTypeReplaced(t *testing.T) {
	plot := NewPlot2D()
	plot.AddKey(TypeKey(SharpPlot))
	plot.AddKey(TypeKey(OnlyMarks))
	keys := plot.Keys()
	if len(keys) != 1 {
		t.Fatalf("len = %d, want 1", len(keys))
	}
	if keys[0].String() != "only marks" {
		t.Errorf("key = %q, want %q", keys[0].String(), "only marks")
	}
}

func TestPlotSetCoordinates(t *testing.T) {
	plot := NewPlot2D()
	plot.AppendCoordinate(XY(0, 0))
	plot.SetCoordinates([]Coordinate{XY(1, 1), XY(2, 2)})
	coords := plot.Coordinates()
	if len(coords) != 2 {
		t.Fatalf("len = %d, want 2", len(coords))
	}
	if coords[0].String() != "(1,1)" || coords[1].String() != "(2,2)" {
		t.Errorf("coords = %v", coords)
	}
}
