package services

import (
	"bytes"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderTrendChart renders the recent daily order trend as a
// self-contained echarts HTML page, one line per metric.
func RenderTrendChart(points []DailyPoint, currency string) (string, error) {
	days := make([]string, len(points))
	counts := make([]opts.LineData, len(points))
	revenue := make([]opts.LineData, len(points))
	for i, p := range points {
		days[i] = p.Date
		counts[i] = opts.LineData{Value: p.Count}
		revenue[i] = opts.LineData{Value: p.Revenue}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "订单趋势", Subtitle: "最近 7 天"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(days)
	line.AddSeries("订单数", counts)
	line.AddSeries("营收 ("+currency+")", revenue)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return renderChart(line)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
