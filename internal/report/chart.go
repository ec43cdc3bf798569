package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Afrawles/contribstats/internal/contrib"
)

// ChartExporter writes an HTML page with a contributions trend chart.
type ChartExporter struct {
	OutputDir string
}

func NewChartExporter(outputDir string) *ChartExporter {
	return &ChartExporter{OutputDir: outputDir}
}

// Export plots weekly contribution totals over the year ending at today.
func (e *ChartExporter) Export(m contrib.ContributionMap, today time.Time, title, filename string) error {
	start := today.AddDate(0, 0, -364)
	daysSinceMonday := (int(start.Weekday()) + 6) % 7
	start = start.AddDate(0, 0, -daysSinceMonday)

	var labels []string
	var data []opts.LineData

	for week := 0; week < heatmapWeeks; week++ {
		weekStart := start.AddDate(0, 0, week*7)
		total := 0
		for dow := 0; dow < 7; dow++ {
			total += m[weekStart.AddDate(0, 0, dow).Format(contrib.DateFormat)]
		}
		labels = append(labels, weekStart.Format("Jan 02"))
		data = append(data, opts.LineData{Value: total})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "100%",
			Height:    "420px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Contributions per week",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Week"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Contributions"}),
	)
	line.SetXAxis(labels)
	line.AddSeries("Contributions", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: heatmapColors[3]}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.2)}),
	)

	outputPath := filepath.Join(e.OutputDir, filename)
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}
