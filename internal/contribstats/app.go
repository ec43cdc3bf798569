package contribstats

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Afrawles/contribstats/internal/config"
	"github.com/Afrawles/contribstats/internal/contrib"
	"github.com/Afrawles/contribstats/internal/github"
	"github.com/Afrawles/contribstats/internal/report"
)

type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Generator *report.Generator
	Exporter  *report.Exporter

	commitSource *github.CommitSource
}

func New(cfg *config.Config) (*Application, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var sources []contrib.ActivitySource

	calendar := github.NewCalendarSource(cfg.GitHub.Token, cfg.GitHub.Username)
	sources = append(sources, calendar)
	logger.Info("calendar source initialized", "user", cfg.GitHub.Username)

	var commitSource *github.CommitSource
	if len(cfg.GitHub.ExtraRepos) > 0 || cfg.GitHub.ScanOwner != "" {
		var repos []github.RepoSpec
		for _, spec := range cfg.GitHub.ExtraRepos {
			parsed, err := github.ParseRepoSpec(spec, cfg.GitHub.AuthorEmail)
			if err != nil {
				return nil, fmt.Errorf("invalid extra repo: %w", err)
			}
			repos = append(repos, parsed)
		}

		commitSource = github.NewCommitSource(cfg.GitHub.Token, repos)
		sources = append(sources, commitSource)
		logger.Info("commit scan source initialized", "repos", len(repos), "scan_owner", cfg.GitHub.ScanOwner)
	}

	generator := report.NewGenerator(sources...)
	generator.Policy.Lookback = cfg.GitHub.LookbackDays

	return &Application{
		Config:       cfg,
		Logger:       logger,
		Generator:    generator,
		Exporter:     report.NewExporter(cfg.Output.Directory),
		commitSource: commitSource,
	}, nil
}

// GenerateReports runs the whole pipeline: discovery, fetch, aggregation,
// streak analysis and every configured export format.
func (app *Application) GenerateReports(ctx context.Context, today time.Time) error {
	cfg := app.Config
	start := today.AddDate(0, 0, -cfg.GitHub.LookbackDays)

	app.Logger.Info("generating reports",
		"user", cfg.GitHub.Username,
		"start", start.Format(contrib.DateFormat),
		"end", today.Format(contrib.DateFormat),
	)

	if cfg.GitHub.ScanOwner != "" && app.commitSource != nil {
		discovered, err := app.commitSource.Client.DiscoverRepos(ctx, cfg.GitHub.ScanOwner)
		if err != nil {
			app.Logger.Warn("repository discovery failed", "owner", cfg.GitHub.ScanOwner, "error", err)
		} else {
			app.Logger.Info("repositories discovered", "owner", cfg.GitHub.ScanOwner, "count", len(discovered))
			for _, nameWithOwner := range discovered {
				spec, err := github.ParseRepoSpec(nameWithOwner, cfg.GitHub.AuthorEmail)
				if err != nil {
					continue
				}
				app.commitSource.Repos = append(app.commitSource.Repos, spec)
			}
		}
	}

	m, bySource, err := app.Generator.Generate(ctx, start, today)
	if err != nil {
		app.Logger.Error("failed to fetch contributions", "error", err)
		return err
	}

	summary := app.Generator.Summarize(m, bySource, today)
	app.Logger.Info("contributions aggregated",
		"total", summary.TotalContributions,
		"active_days", summary.ActiveDays,
		"current_streak", summary.CurrentStreak,
		"max_streak", summary.MaxStreak,
	)

	if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	heatmap := report.NewHeatmap(cfg.Title).Render(m, today)

	for _, format := range cfg.Output.Format {
		switch format {
		case "json":
			if err := app.Exporter.ExportJSON(summary, "contributions.json"); err != nil {
				app.Logger.Error("failed to export JSON", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "json", "file", "contributions.json")
			}

		case "svg":
			if err := app.Exporter.ExportSVG(heatmap, "contributions.svg"); err != nil {
				app.Logger.Error("failed to export SVG", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "svg", "file", "contributions.svg")
			}

		case "markdown":
			if err := app.Exporter.ExportMarkdown(summary, cfg.Title, "README.md", "contributions.svg"); err != nil {
				app.Logger.Error("failed to export Markdown", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "markdown", "file", "README.md")
			}

		case "html":
			chartExporter := report.NewChartExporter(cfg.Output.Directory)
			if err := chartExporter.Export(m, today, cfg.Title, "trend.html"); err != nil {
				app.Logger.Error("failed to export trend chart", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "html", "file", "trend.html")
			}

		case "csv":
			csvExporter := report.NewCSVExporter(cfg.Output.Directory)
			if err := csvExporter.Export(m, summary); err != nil {
				app.Logger.Error("failed to export CSV", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "csv")
			}

		case "excel":
			excelExporter := report.NewExcelExporter(cfg.Output.Directory)
			if err := excelExporter.Export(m, summary); err != nil {
				app.Logger.Error("failed to export Excel", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "excel")
			}

		default:
			app.Logger.Warn("unknown output format", "format", format)
		}
	}

	app.Logger.Info("report generation complete",
		"total", summary.TotalContributions,
		"current_streak", summary.CurrentStreak,
	)

	return nil
}
