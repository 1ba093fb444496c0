package roundexport

import (
	"bytes"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette is the set of colours used by rendered charts.
type ChartPalette struct {
	Background drawing.Color
	TextColor  drawing.Color
	Lines      []drawing.Color
}

// DefaultPalette is a light palette with four distinguishable series colours.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorWhite,
	TextColor:  drawing.ColorFromHex("1f2933"),
	Lines: []drawing.Color{
		drawing.ColorFromHex("2f6f4e"),
		drawing.ColorFromHex("c58b17"),
		drawing.ColorFromHex("3d5a98"),
		drawing.ColorFromHex("a23b3b"),
	},
}

// RenderPointsChart draws each player's running total across confirmed holes:
// strokes in stroke play, Sindicato points in Sindicato, Stableford points
// otherwise.
func RenderPointsChart(card rounddomain.Scorecard, palette ChartPalette) ([]byte, error) {
	series, maxY, holes := cumulativeSeries(card, palette)
	if holes == 0 {
		return renderNoDataPlaceholder(palette)
	}
	if maxY < 1 {
		maxY = 1
	}

	graph := chart.Chart{
		Width:      800,
		Height:     400,
		Background: chart.Style{FillColor: palette.Background},
		Canvas:     chart.Style{FillColor: palette.Background},
		XAxis: chart.XAxis{
			Name:  "Holes played",
			Style: chart.Style{FontColor: palette.TextColor},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(holes)},
		},
		YAxis: chart.YAxis{
			Name:  yAxisName(card.Mode),
			Style: chart.Style{FontColor: palette.TextColor},
			Range: &chart.ContinuousRange{Min: 0, Max: maxY},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func cumulativeSeries(card rounddomain.Scorecard, palette ChartPalette) ([]chart.Series, float64, int) {
	var (
		series []chart.Series
		maxY   float64
		holes  int
	)
	for i, pc := range card.Players {
		xs := []float64{0}
		ys := []float64{0}
		total := 0.0
		for _, line := range pc.Holes {
			if !line.Confirmed {
				continue
			}
			total += lineValue(card.Mode, line)
			xs = append(xs, float64(len(xs)))
			ys = append(ys, total)
		}
		if len(xs)-1 > holes {
			holes = len(xs) - 1
		}
		if total > maxY {
			maxY = total
		}

		style := chart.Style{StrokeWidth: 2, DotWidth: 3}
		if len(palette.Lines) > 0 {
			c := palette.Lines[i%len(palette.Lines)]
			style.StrokeColor = c
			style.DotColor = c
		}
		series = append(series, chart.ContinuousSeries{
			Name:    pc.Name,
			XValues: xs,
			YValues: ys,
			Style:   style,
		})
	}
	return series, maxY, holes
}

func lineValue(mode rounddomain.GameMode, line rounddomain.HoleLine) float64 {
	switch mode {
	case rounddomain.ModeStroke:
		return float64(line.Strokes)
	case rounddomain.ModeSindicato:
		return line.Sindicato
	default:
		return float64(line.Points)
	}
}

func yAxisName(mode rounddomain.GameMode) string {
	switch mode {
	case rounddomain.ModeStroke:
		return "Strokes"
	case rounddomain.ModeSindicato:
		return "Sindicato points"
	default:
		return "Stableford points"
	}
}

// renderNoDataPlaceholder draws a message straight onto a PNG renderer;
// chart.Chart refuses to render without series.
func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No confirmed holes yet"
	)

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	r.SetFillColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(palette.TextColor)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
