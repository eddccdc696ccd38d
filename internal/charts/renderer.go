package charts

import (
	"bytes"
	"chatstat/internal/models"
	"chatstat/internal/structures"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var ErrEmptyChart = errors.New("nothing to render")

// Only non-zero points carry a value label.
const nonZeroLabel = "function (p) { return p.value > 0 ? p.value : ''; }"

type RendererInterface interface {
	Render(m *models.Matrix, w io.Writer) error
	WriteFile(m *models.Matrix) (string, error)
}

type Renderer struct {
	config structures.ChartConfig
}

func NewRenderer(conf *structures.Config) RendererInterface {
	return &Renderer{config: conf.Chart}
}

// Render draws one line per user: days of a month, or months of a year.
func (r *Renderer) Render(m *models.Matrix, w io.Writer) error {
	if m.Empty() {
		return ErrEmptyChart
	}
	return r.line(m).Render(w)
}

// WriteFile renders m into the configured output directory and returns the path.
func (r *Renderer) WriteFile(m *models.Matrix) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(m, &buf); err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.config.OutputDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(r.config.OutputDir, FileName(m.Period))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func FileName(p models.Period) string {
	if p.IsMonth() {
		return "month-" + p.String() + ".html"
	}
	return "year-" + p.String() + ".html"
}

func Title(p models.Period) string {
	if p.IsMonth() {
		return fmt.Sprintf("User activity by day (%s %d)", time.Month(p.Month).String()[:3], p.Year)
	}
	return fmt.Sprintf("User activity by month (%d)", p.Year)
}

func (r *Renderer) line(m *models.Matrix) *charts.Line {
	xName := "Month"
	if m.Period.IsMonth() {
		xName = "Date"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: Title(m.Period),
			Theme:     r.config.Theme,
			Width:     strconv.Itoa(r.config.Width) + "px",
			Height:    strconv.Itoa(r.config.Height) + "px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    Title(m.Period),
			Subtitle: fmt.Sprintf("%d users", len(m.Users)),
		}),
		charts.WithLegendOpts(opts.Legend{Show: true, Right: "10px", Orient: "vertical"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Messages"}),
	)

	line.SetXAxis(m.Labels)
	for j, user := range m.Users {
		data := make([]opts.LineData, 0, len(m.Labels))
		for _, v := range m.Column(j) {
			data = append(data, opts.LineData{Value: v})
		}
		line.AddSeries(user, data)
	}

	line.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show:      true,
			Position:  "top",
			Formatter: opts.FuncOpts(nonZeroLabel),
		}),
	)
	return line
}
