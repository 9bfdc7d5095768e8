package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"pgfplot"
)

var demoSet compileSettings

var demoCmd = &cobra.Command{
	Use:   "demo [name]",
	Short: "Compile a built-in demo figure",
	Long:  "Compile one of the built-in demo figures. With no arguments the available demos are listed.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDemoCmd,
}

func init() {
	demoSet.register(demoCmd)
}

var demos = map[string]func() *pgfplot.Picture{
	"quadratic":             demoQuadratic,
	"snowflake":             demoSnowflake,
	"fitted-line":           demoFittedLine,
	"rectangle-integration": demoRectangleIntegration,
}

func runDemoCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		names := make([]string, 0, len(demos))
		for name := range demos {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	build, ok := demos[args[0]]
	if !ok {
		return fmt.Errorf("unknown demo %q (run without arguments to list demos)", args[0])
	}
	engine, opts, err := demoSet.build()
	if err != nil {
		return err
	}
	figures := []pgfplot.Figure{{Name: args[0], Picture: build()}}
	results, err := pgfplot.CompileAll(cmd.Context(), engine, figures, opts)
	if err != nil {
		return err
	}
	return reportResults(figures, results)
}

func demoQuadratic() *pgfplot.Picture {
	plot := pgfplot.NewPlot2D()
	for i := -50; i <= 50; i++ {
		x := float64(i) / 10
		plot.AppendCoordinate(pgfplot.XY(x, x*x))
	}

	axis := pgfplot.AxisFromPlot(plot)
	axis.SetTitle("Quadratic")
	axis.SetXLabel("$x$")
	axis.SetYLabel("$y = x^2$")
	return pgfplot.PictureFromAxis(axis)
}

func demoSnowflake() *pgfplot.Picture {
	vertices := [][2]float64{
		{0, 1},
		{math.Sqrt(3) / 2, -0.5},
		{-math.Sqrt(3) / 2, -0.5},
	}
	for range 5 {
		vertices = snowflakeIter(vertices)
	}
	vertices = append(vertices, vertices[0])

	plot := pgfplot.NewPlot2D()
	for _, v := range vertices {
		plot.AppendCoordinate(pgfplot.XY(v[0], v[1]))
	}
	plot.AddKey(pgfplot.CustomKey("fill", "gray!20"))

	axis := pgfplot.AxisFromPlot(plot)
	axis.SetTitle("Koch Snowflake")
	axis.AddKey(pgfplot.CustomKey("hide axis", ""))
	return pgfplot.PictureFromAxis(axis)
}

// snowflakeIter replaces every edge with the four edges of the next Koch
// iteration.
func snowflakeIter(points [][2]float64) [][2]float64 {
	out := make([][2]float64, 0, 4*len(points))
	for i := range points {
		start, end := points[i], points[(i+1)%len(points)]
		tx, ty := (end[0]-start[0])/3, (end[1]-start[1])/3
		sx := tx*0.5 - ty*math.Sqrt(0.75)
		sy := ty*0.5 + tx*math.Sqrt(0.75)
		out = append(out,
			start,
			[2]float64{start[0] + tx, start[1] + ty},
			[2]float64{start[0] + tx + sx, start[1] + ty + sy},
			[2]float64{start[0] + 2*tx, start[1] + 2*ty},
		)
	}
	return out
}

func demoFittedLine() *pgfplot.Picture {
	line := pgfplot.NewPlot2D()
	for i := 0; i <= 10; i++ {
		line.AppendCoordinate(pgfplot.XY(float64(i), 2*math.Pi*float64(i)))
	}
	line.AddKey(pgfplot.CustomKey("dashed", ""))

	points := pgfplot.NewPlot2D()
	data := []struct{ x, y, ex, ey float64 }{
		{1, 8, 0.2, 0.9},
		{3, 16, 0.4, 1.4},
		{5, 33, 0.2, 3.4},
		{7, 41, 0.2, 3.4},
		{9, 58, 0.5, 1.4},
	}
	for _, d := range data {
		points.AppendCoordinate(pgfplot.XY(d.x, d.y).WithXError(d.ex).WithYError(d.ey))
	}
	points.AddKey(pgfplot.TypeKey(pgfplot.OnlyMarks))
	points.AddKey(pgfplot.XErrorKey(pgfplot.ErrorAbsolute))
	points.AddKey(pgfplot.XErrorDirectionKey(pgfplot.ErrorBoth))
	points.AddKey(pgfplot.YErrorKey(pgfplot.ErrorAbsolute))
	points.AddKey(pgfplot.YErrorDirectionKey(pgfplot.ErrorBoth))
	points.AddKey(pgfplot.CustomKey("mark size", "1pt"))

	axis := pgfplot.NewAxis()
	axis.SetTitle("Slope is $2\\pi$")
	axis.SetXLabel("Radius~[m]")
	axis.SetYLabel("Circumference~[m]")
	axis.AddPlot(line)
	axis.AddPlot(points)
	axis.AddKey(pgfplot.CustomKey("legend entries", "{fit,data}"))
	axis.AddKey(pgfplot.CustomKey("legend pos", "north west"))
	return pgfplot.PictureFromAxis(axis)
}

func demoRectangleIntegration() *pgfplot.Picture {
	line := pgfplot.NewPlot2D()
	for i := 0; i <= 100; i++ {
		line.AppendCoordinate(pgfplot.XY(float64(i), float64(i*i)))
	}

	rectangles := pgfplot.NewPlot2D()
	for i := 0; i <= 100; i += 10 {
		rectangles.AppendCoordinate(pgfplot.XY(float64(i), float64(i*i)))
	}
	rectangles.AddKey(pgfplot.CustomKey("ybar, bar width", "19.5"))
	rectangles.AddKey(pgfplot.CustomKey("fill", "gray!20"))
	rectangles.AddKey(pgfplot.CustomKey("draw opacity", "0.5"))

	axis := pgfplot.NewAxis()
	axis.SetTitle("Rectangle Integration")
	axis.SetXLabel("$x$")
	axis.SetYLabel("$y = x^2$")
	axis.AddPlot(rectangles)
	axis.AddPlot(line)
	axis.AddKey(pgfplot.CustomKey("axis lines", "middle"))
	axis.AddKey(pgfplot.CustomKey("xlabel near ticks", ""))
	axis.AddKey(pgfplot.CustomKey("ylabel near ticks", ""))
	return pgfplot.PictureFromAxis(axis)
}
