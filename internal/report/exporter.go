package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/template"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed "templates"
var templateFS embed.FS

type Exporter struct {
	OutputDir string
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{OutputDir: outputDir}
}

func (e *Exporter) ExportJSON(summary Summary, filename string) error {
	data, err := json.MarshalIndent(summary, "", "\t")
	if err != nil {
		return err
	}

	return os.WriteFile(fmt.Sprintf("%s/%s", e.OutputDir, filename), data, 0644)
}

func (e *Exporter) ExportSVG(svg string, filename string) error {
	return os.WriteFile(fmt.Sprintf("%s/%s", e.OutputDir, filename), []byte(svg), 0644)
}

type sourceCount struct {
	Name  string
	Count int
}

func (e *Exporter) ExportMarkdown(summary Summary, title, filename, svgFile string) error {
	funcMap := template.FuncMap{
		"title": cases.Title(language.English).String,
		"comma": func(n int) string { return humanize.Comma(int64(n)) },
	}
	tmpl, err := template.New("report.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/report.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	outputPath := fmt.Sprintf("%s/%s", e.OutputDir, filename)
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	var breakdown []sourceCount
	for name, count := range summary.BySource {
		breakdown = append(breakdown, sourceCount{Name: name, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Name < breakdown[j].Name
	})

	data := map[string]any{
		"Title":     title,
		"Summary":   summary,
		"Breakdown": breakdown,
		"SVGFile":   svgFile,
		"Date":      summary.GeneratedAt.Format("2006-01-02 15:04 UTC"),
	}

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	fmt.Printf("Markdown report saved: %s\n", outputPath)
	return nil
}
