package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/Afrawles/contribstats/internal/contrib"
)

const (
	baseURL    = "https://api.github.com"
	graphqlURL = baseURL + "/graphql"

	commitsPerPage = 100
	// GitHub caps search-style listings anyway; 10 pages keeps a single repo
	// scan under 1000 commits.
	maxCommitPages = 10
)

type Client struct {
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	graphqlURL string
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 3),
		baseURL:    baseURL,
		graphqlURL: graphqlURL,
	}
}

// Calendar is the provider's own per-day contribution summary plus the totals
// it reports alongside it.
type Calendar struct {
	Days               []contrib.DayBucket
	TotalContributions int
	RestrictedCount    int
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type contributionsResponse struct {
	Data struct {
		User struct {
			ContributionsCollection struct {
				RestrictedContributionsCount int `json:"restrictedContributionsCount"`
				ContributionCalendar         struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

const contributionsQuery = `
query($username: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $username) {
    contributionsCollection(from: $from, to: $to) {
      restrictedContributionsCount
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

// FetchCalendar fetches the official contribution calendar for a user over
// the given window via the GraphQL API.
func (c *Client) FetchCalendar(ctx context.Context, username string, from, to time.Time) (*Calendar, error) {
	var result contributionsResponse
	err := c.doGraphQL(ctx, contributionsQuery, map[string]any{
		"username": username,
		"from":     from.UTC().Format(time.RFC3339),
		"to":       to.UTC().Format(time.RFC3339),
	}, &result)
	if err != nil {
		return nil, err
	}

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", result.Errors[0].Message)
	}

	collection := result.Data.User.ContributionsCollection
	calendar := &Calendar{
		TotalContributions: collection.ContributionCalendar.TotalContributions,
		RestrictedCount:    collection.RestrictedContributionsCount,
	}
	for _, week := range collection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			calendar.Days = append(calendar.Days, contrib.DayBucket{
				Date:  day.Date,
				Count: day.ContributionCount,
			})
		}
	}

	return calendar, nil
}

type discoverResponse struct {
	Data struct {
		User struct {
			Repositories struct {
				Nodes []struct {
					NameWithOwner string `json:"nameWithOwner"`
				} `json:"nodes"`
			} `json:"repositories"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

const discoverQuery = `
query($username: String!) {
  user(login: $username) {
    repositories(first: 100, ownerAffiliations: OWNER) {
      nodes {
        nameWithOwner
      }
    }
  }
}`

// DiscoverRepos lists repositories owned by a user, as owner/name pairs.
// Private repos show up only when the token can see them.
func (c *Client) DiscoverRepos(ctx context.Context, owner string) ([]string, error) {
	var result discoverResponse
	if err := c.doGraphQL(ctx, discoverQuery, map[string]any{"username": owner}, &result); err != nil {
		return nil, err
	}

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", result.Errors[0].Message)
	}

	var repos []string
	for _, node := range result.Data.User.Repositories.Nodes {
		if node.NameWithOwner != "" {
			repos = append(repos, node.NameWithOwner)
		}
	}

	return repos, nil
}

func (c *Client) doGraphQL(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal graphql request: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

type restCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// FetchRepoCommits pages through a repository's commit list filtered by
// author email, newest first, starting at since.
func (c *Client) FetchRepoCommits(ctx context.Context, owner, repo, authorEmail string, since time.Time) ([]contrib.Event, error) {
	var events []contrib.Event

	for page := 1; page <= maxCommitPages; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/commits?author=%s&since=%s&per_page=%d&page=%d",
			c.baseURL, owner, repo, authorEmail, since.UTC().Format(time.RFC3339), commitsPerPage, page)

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if c.token != "" {
			req.Header.Set("Authorization", "token "+c.token)
		}
		req.Header.Set("Accept", "application/vnd.github.v3+json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}

		var commits []restCommit
		err = json.NewDecoder(resp.Body).Decode(&commits)
		status := resp.StatusCode
		resp.Body.Close()

		if status != http.StatusOK {
			return nil, fmt.Errorf("API error fetching %s/%s (status %d)", owner, repo, status)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode commits: %w", err)
		}

		for _, commit := range commits {
			events = append(events, contrib.Event{
				Timestamp: commit.Commit.Author.Date,
				Repo:      owner + "/" + repo,
				SHA:       commit.SHA,
			})
		}

		if len(commits) < commitsPerPage {
			break
		}
	}

	return events, nil
}

func (c *Client) HealthCheck() error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/rate_limit", nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API health check failed with status %d", resp.StatusCode)
	}

	return nil
}
