package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"CycleBand/internal/forecast"
	"CycleBand/internal/model"

	"github.com/dustin/go-humanize"
)

// ANSI escape codes per band.
const (
	colorBrightGreen = "\033[92m"
	colorGreen       = "\033[32m"
	colorDarkGreen   = "\033[38;5;22m"
	colorYellowGreen = "\033[38;5;142m"
	colorYellow      = "\033[93m"
	colorOrange      = "\033[38;5;208m"
	colorDarkRed     = "\033[38;5;52m"
	colorRed         = "\033[91m"
	colorBrightRed   = "\033[38;5;196m"
	colorReset       = "\033[0m"
)

var bandColors = map[Band]string{
	BandStrongAbove: colorBrightGreen,
	BandAbove:       colorGreen,
	BandMildAbove:   colorDarkGreen,
	BandNearAbove:   colorYellowGreen,
	BandAtMedian:    colorYellow,
	BandNearBelow:   colorOrange,
	BandMildBelow:   colorDarkRed,
	BandBelow:       colorRed,
	BandStrongBelow: colorBrightRed,
}

type alignment int

const (
	alignLeft alignment = iota
	alignRight
	alignCenter
)

// columnSpec declares one report column's geometry and number formatting.
type columnSpec struct {
	title     string
	width     int
	align     alignment
	prefix    string
	percent   bool
	precision int // decimals, percent columns only
}

var columns = []columnSpec{
	{title: "Date", width: 10, align: alignLeft, prefix: " "},
	{title: "Price", width: 9, align: alignRight},
	{title: "Move", width: 7, align: alignRight, prefix: " ", percent: true, precision: 2},
	{title: "Offset", width: 7, align: alignRight, percent: true, precision: 1},
	{title: "CEILING", width: 9, align: alignRight},
	{title: "MEDIAN", width: 9, align: alignRight},
	{title: "FLOOR", width: 9, align: alignRight},
	{title: "Step", width: 5, align: alignRight},
	{title: "Change", width: 7, align: alignRight},
	{title: "52-weeks", width: 9, align: alignCenter, percent: true, precision: 2},
}

const (
	tableBorder = "+------------+----------+--------+--------+----------+----------+----------+------+--------+----------+"
	tableHeader = "|    Date    |   Price  |  Move  | Offset | CEILING  |  MEDIAN  |  FLOOR   | Step | Change | 52-weeks |"

	projectionBorder = "+------------+----------+-------------------------------+"
)

// Renderer writes the band report as a fixed-width table.
type Renderer struct {
	Out   io.Writer
	Color bool
}

// NewRenderer creates a Renderer. Color should be false when the output is
// not a terminal.
func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{Out: out, Color: color}
}

// Render prints the display window, one color-coded row per point, most
// recent first.
func (r *Renderer) Render(rows []model.DerivedPoint) {
	fmt.Fprintln(r.Out, tableBorder)
	fmt.Fprintln(r.Out, tableHeader)
	fmt.Fprintln(r.Out, tableBorder)
	for _, row := range rows {
		line := formatRow(row)
		if r.Color {
			line = bandColors[Classify(row)] + line + colorReset
		}
		fmt.Fprintln(r.Out, line)
	}
	fmt.Fprintln(r.Out, tableBorder)
}

// RenderSummary prints the long-run trend line shown above the table.
func (r *Renderer) RenderSummary(avgDaily, compoundPct float64) {
	line := fmt.Sprintf("%31s4-year Avg: %.2f%%/year -> %.2f%% compound", "", avgDaily, compoundPct)
	if r.Color {
		line = colorYellow + line + colorReset
	}
	fmt.Fprintln(r.Out, line)
}

// RenderQuote prints the live ticker line below the table.
func (r *Renderer) RenderQuote(q model.Quote) {
	fmt.Fprintf(r.Out, "| Spot: bid %s  ask %s  last %s\n",
		commaf(q.Bid), commaf(q.Ask), commaf(q.Last))
}

// RenderProjection prints the forward price targets below the table.
func (r *Renderer) RenderProjection(p forecast.Projection) {
	fmt.Fprintf(r.Out, "| %d-day Avg Step: %.2f\n", p.HorizonDays, p.AvgStep)
	fmt.Fprintln(r.Out, projectionBorder)
	fmt.Fprintf(r.Out, "|    %4d    | $%s | %s\n",
		p.YearEnd.Date.Year(), commaf(p.YearEnd.Price), p.YearEnd.Date.Format("January 02, 2006"))
	fmt.Fprintf(r.Out, "|    +%2dd    | $%s | %s\n",
		p.HorizonDays, commaf(p.ShortTerm.Price), p.ShortTerm.Date.Format("January 02, 2006"))
	fmt.Fprintln(r.Out, projectionBorder)
}

func formatRow(p model.DerivedPoint) string {
	band := p.HasBand()
	cells := []string{
		p.Date.Format("2006-01-02"),
		commaf(p.Price),
		pct(p.MovePct, 2),
		optPct(p.OffsetPct, 1, band),
		optCommaf(p.Ceiling, band),
		optCommaf(p.Median, band),
		optCommaf(p.Floor, band),
		optCommaf(p.Step, band),
		commaf(p.Change),
		optPct(p.YearPct, 2, band),
	}

	var b strings.Builder
	b.WriteString("|")
	for i, spec := range columns {
		cell := cells[i]
		if cell != "" {
			cell = spec.prefix + cell
		}
		b.WriteString(pad(cell, spec.width, spec.align))
		b.WriteString(" |")
	}
	return b.String()
}

// commaf renders a value with thousands separators and no decimals.
func commaf(v float64) string {
	return humanize.Commaf(math.Round(v))
}

func optCommaf(v float64, defined bool) string {
	if !defined {
		return ""
	}
	return commaf(v)
}

func pct(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64) + "%"
}

func optPct(v float64, precision int, defined bool) string {
	if !defined {
		return ""
	}
	return pct(v, precision)
}

func pad(s string, width int, align alignment) string {
	gap := width - len(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case alignLeft:
		return s + strings.Repeat(" ", gap)
	case alignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return strings.Repeat(" ", gap) + s
	}
}
