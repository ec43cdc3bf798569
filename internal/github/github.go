package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Afrawles/contribstats/internal/contrib"
)

// CalendarSource yields the provider's own contribution calendar as
// pre-aggregated day buckets.
type CalendarSource struct {
	Client   *Client
	Username string
}

func NewCalendarSource(token, username string) *CalendarSource {
	return &CalendarSource{
		Client:   NewClient(token),
		Username: username,
	}
}

var _ contrib.ActivitySource = (*CalendarSource)(nil)

func (s *CalendarSource) Name() string {
	return "GitHub Calendar"
}

func (s *CalendarSource) HealthCheck() error {
	return s.Client.HealthCheck()
}

func (s *CalendarSource) FetchRecords(ctx context.Context, start, end time.Time) ([]contrib.Record, error) {
	calendar, err := s.Client.FetchCalendar(ctx, s.Username, start, end)
	if err != nil {
		return nil, err
	}

	records := make([]contrib.Record, 0, len(calendar.Days))
	for _, day := range calendar.Days {
		records = append(records, day)
	}

	return records, nil
}

// RepoSpec names one repository to scan for commits by a specific author.
type RepoSpec struct {
	Owner       string
	Name        string
	AuthorEmail string
}

func (r RepoSpec) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoSpec parses "owner/repo" with an author email fallback.
func ParseRepoSpec(spec, defaultEmail string) (RepoSpec, error) {
	name := spec
	email := defaultEmail
	if at := strings.Index(spec, "="); at >= 0 {
		name = spec[:at]
		email = spec[at+1:]
	}

	parts := strings.SplitN(name, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoSpec{}, fmt.Errorf("invalid repo spec %q (want owner/repo)", spec)
	}
	if email == "" {
		return RepoSpec{}, fmt.Errorf("repo spec %q has no author email", spec)
	}

	return RepoSpec{Owner: parts[0], Name: parts[1], AuthorEmail: email}, nil
}

// CommitSource scans individual repositories for commits the provider's
// calendar may have missed, one event per commit.
type CommitSource struct {
	Client *Client
	Repos  []RepoSpec
}

func NewCommitSource(token string, repos []RepoSpec) *CommitSource {
	return &CommitSource{
		Client: NewClient(token),
		Repos:  repos,
	}
}

var _ contrib.ActivitySource = (*CommitSource)(nil)

func (s *CommitSource) Name() string {
	return "Commit Scan"
}

func (s *CommitSource) HealthCheck() error {
	return s.Client.HealthCheck()
}

func (s *CommitSource) FetchRecords(ctx context.Context, start, end time.Time) ([]contrib.Record, error) {
	var records []contrib.Record
	var failed []string

	for _, repo := range s.Repos {
		events, err := s.Client.FetchRepoCommits(ctx, repo.Owner, repo.Name, repo.AuthorEmail, start)
		if err != nil {
			// One unreadable repo should not sink the rest of the scan.
			fmt.Printf("   skipping %s: %v\n", repo, err)
			failed = append(failed, repo.String())
			continue
		}

		for _, event := range events {
			if event.Timestamp.After(end) {
				continue
			}
			records = append(records, event)
		}
	}

	if len(records) == 0 && len(failed) == len(s.Repos) && len(s.Repos) > 0 {
		return nil, fmt.Errorf("all %d repos failed to scan", len(s.Repos))
	}

	return records, nil
}
