package offset

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

// Chart writes a bar chart comparing the required new woodland against
// the existing stock and the total land area. The output format follows
// the path extension (.png, .svg, .pdf).
func Chart(r Result, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Woodland needed to offset annual emissions"
	p.Y.Label.Text = "thousand hectares"

	values := plotter.Values{r.Params.LandKha, r.Params.WoodlandKha, r.RequiredKha}
	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "build bar chart")
	}
	bars.LineStyle.Width = 0
	bars.Color = color.RGBA{R: 0x2d, G: 0x6a, B: 0x4f, A: 0xff}
	p.Add(bars)
	p.NominalX("land area", "existing woodland", "required woodland")

	if err := p.Save(14*vg.Centimeter, 9*vg.Centimeter, path); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "save chart %s", path)
	}
	return nil
}
