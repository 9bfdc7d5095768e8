// Package pgfplot generates publication-quality figures as PGFPlots
// documents and compiles them to PDF.
//
// A figure is built as a tree: a Picture holds axis environments, an Axis
// holds plots, and a Plot holds an ordered list of coordinates. Every level
// accepts typed option keys plus a CustomKey escape for options the library
// does not model. The tree renders to deterministic LaTeX markup which is
// then handed to one of two engines: an external pdflatex process or the
// embedded in-process renderer.
//
// Plotting a quadratic is as short as:
//
//	plot := pgfplot.NewPlot2D()
//	for i := -100; i <= 100; i++ {
//		plot.AppendCoordinate(pgfplot.XY(float64(i), float64(i*i)))
//	}
//	pic := pgfplot.PictureFromAxis(pgfplot.AxisFromPlot(plot))
//	res, err := pic.Compile(context.Background(), pgfplot.EngineEmbedded, pgfplot.Options{})
package pgfplot
