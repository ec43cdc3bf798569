package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Afrawles/contribstats/internal/config"
	"github.com/Afrawles/contribstats/internal/contrib"
	"github.com/Afrawles/contribstats/internal/contribstats"
	"github.com/Afrawles/contribstats/internal/github"
	"github.com/Afrawles/contribstats/internal/report"
)

var (
	username    string
	githubToken string
	output      string
	formats     string
	extraRepos  string
	scanOwner   string
	authorEmail string
	title       string
	lookback    int
)

var rootCmd = &cobra.Command{
	Use:   "contribstats",
	Short: "Generate GitHub contribution stats and streak reports",
	Long:  `ContribStats aggregates a user's GitHub contribution calendar with commits scanned from extra repos and renders heatmap, streak and summary reports.`,
	Run:   generateReports,
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Print streak stats to the terminal (no report files)",
	Run:   showStreaks,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	godotenv.Load()
	rootCmd.AddCommand(streakCmd)

	rootCmd.PersistentFlags().StringVarP(&username, "user", "u", "", "GitHub username")
	rootCmd.PersistentFlags().StringVar(&githubToken, "token", "", "GitHub API token")
	rootCmd.PersistentFlags().IntVar(&lookback, "days", 0, "Lookback window in days (default 365)")
	rootCmd.PersistentFlags().StringVar(&extraRepos, "repos", "", "Comma-separated extra repos to scan (owner/repo or owner/repo=email)")
	rootCmd.PersistentFlags().StringVar(&scanOwner, "scan-owner", "", "Discover and scan all repos owned by this user")
	rootCmd.PersistentFlags().StringVar(&authorEmail, "author-email", "", "Author email for commit scanning")

	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default \"stats\")")
	rootCmd.Flags().StringVar(&formats, "formats", "", "Comma-separated output formats: json, markdown, svg, html, csv, excel (default \"json,markdown,svg\")")
	rootCmd.Flags().StringVar(&title, "title", "", "Report title")
}

func buildConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	if username != "" {
		cfg.GitHub.Username = username
	}
	if githubToken != "" {
		cfg.GitHub.Token = githubToken
	}
	if scanOwner != "" {
		cfg.GitHub.ScanOwner = scanOwner
	}
	if authorEmail != "" {
		cfg.GitHub.AuthorEmail = authorEmail
	}
	if extraRepos != "" {
		cfg.GitHub.ExtraRepos = parseCommaList(extraRepos)
	}
	if lookback > 0 {
		cfg.GitHub.LookbackDays = lookback
	}
	if output != "" {
		cfg.Output.Directory = output
	}
	if formats != "" {
		cfg.Output.Format = parseCommaList(formats)
	}
	if title != "" {
		cfg.Title = title
	}

	return cfg, nil
}

func generateReports(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig()
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		return
	}

	today := time.Now()
	fmt.Printf("Generating contribution stats for %s (last %d days)\n\n",
		cfg.GitHub.Username, cfg.GitHub.LookbackDays)

	bar := newSpinner("Fetching contributions")
	defer finishBar(bar)

	app, err := contribstats.New(cfg)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}

	if err := app.GenerateReports(context.Background(), today); err != nil {
		fmt.Printf("\nError generating reports: %v\n", err)
		return
	}

	fmt.Printf("\nReports saved to %s/\n", cfg.Output.Directory)
}

func showStreaks(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig()
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		return
	}

	var sources []contrib.ActivitySource
	sources = append(sources, github.NewCalendarSource(cfg.GitHub.Token, cfg.GitHub.Username))

	if len(cfg.GitHub.ExtraRepos) > 0 {
		var repos []github.RepoSpec
		for _, spec := range cfg.GitHub.ExtraRepos {
			parsed, err := github.ParseRepoSpec(spec, cfg.GitHub.AuthorEmail)
			if err != nil {
				fmt.Println(err)
				return
			}
			repos = append(repos, parsed)
		}
		sources = append(sources, github.NewCommitSource(cfg.GitHub.Token, repos))
	}

	today := time.Now()
	start := today.AddDate(0, 0, -cfg.GitHub.LookbackDays)

	bar := newSpinner("Fetching contributions")
	defer finishBar(bar)

	gen := report.NewGenerator(sources...)
	gen.Policy.Lookback = cfg.GitHub.LookbackDays

	m, bySource, err := gen.Generate(context.Background(), start, today)
	if err != nil {
		fmt.Printf("\nFailed to fetch contributions: %v\n", err)
		return
	}

	summary := gen.Summarize(m, bySource, today)
	finishBar(bar)
	fmt.Println()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Total contributions", humanize.Comma(int64(summary.TotalContributions))},
		{"Active days", summary.ActiveDays},
		{"Current streak", fmt.Sprintf("%d days", summary.CurrentStreak)},
		{"Max streak", fmt.Sprintf("%d days", summary.MaxStreak)},
	})
	if summary.BusiestDay != "" {
		t.AppendRow(table.Row{"Busiest day", fmt.Sprintf("%s (%d)", summary.BusiestDay, summary.BusiestCount)})
	}
	for name, count := range summary.BySource {
		t.AppendRow(table.Row{name, humanize.Comma(int64(count))})
	}
	t.Render()

	streakColor := color.New(color.FgHiGreen, color.Bold)
	if summary.CurrentStreak == 0 {
		streakColor = color.New(color.FgHiYellow)
	}
	streakColor.Printf("\nCurrent streak: %d days\n", summary.CurrentStreak)
}

func newSpinner(description string) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	_ = bar.RenderBlank()
	return bar
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
