package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	GitHub GitHubConfig
	Output OutputConfig
	Title  string
}

type GitHubConfig struct {
	Token        string
	Username     string
	ScanOwner    string
	AuthorEmail  string
	ExtraRepos   []string
	LookbackDays int
}

type OutputConfig struct {
	Directory string
	Format    []string // json, markdown, svg, html, csv, excel
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		GitHub: GitHubConfig{
			Token:        os.Getenv("GITHUB_TOKEN"),
			Username:     os.Getenv("GITHUB_USERNAME"),
			ScanOwner:    os.Getenv("GITHUB_SCAN_OWNER"),
			AuthorEmail:  os.Getenv("GITHUB_AUTHOR_EMAIL"),
			LookbackDays: 365,
		},
		Output: OutputConfig{
			Directory: getEnvOrDefault("OUTPUT_DIR", "stats"),
			Format:    strings.Split(getEnvOrDefault("OUTPUT_FORMAT", "json,markdown,svg"), ","),
		},
		Title: getEnvOrDefault("REPORT_TITLE", "Contribution Stats"),
	}

	if days := os.Getenv("LOOKBACK_DAYS"); days != "" {
		parsed, err := strconv.Atoi(days)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid LOOKBACK_DAYS %q", days)
		}
		cfg.GitHub.LookbackDays = parsed
	}

	if reposStr := os.Getenv("GITHUB_EXTRA_REPOS"); reposStr != "" {
		repos := strings.Split(reposStr, ",")
		for i := range repos {
			repos[i] = strings.TrimSpace(repos[i])
		}
		cfg.GitHub.ExtraRepos = repos
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.GitHub.Username == "" {
		return fmt.Errorf("no GitHub username configured (set GITHUB_USERNAME)")
	}

	if len(c.GitHub.ExtraRepos) > 0 || c.GitHub.ScanOwner != "" {
		if c.GitHub.AuthorEmail == "" {
			return fmt.Errorf("repo scanning configured but GITHUB_AUTHOR_EMAIL missing")
		}
	}

	if c.GitHub.ScanOwner != "" && c.GitHub.Token == "" {
		return fmt.Errorf("GITHUB_SCAN_OWNER requires GITHUB_TOKEN for repository discovery")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
