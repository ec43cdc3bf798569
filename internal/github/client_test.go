package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(server *httptest.Server) *Client {
	c := NewClient("test-token")
	c.httpClient = server.Client()
	c.baseURL = server.URL
	c.graphqlURL = server.URL + "/graphql"
	return c
}

func TestFetchCalendar(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mibao", req.Variables["username"])

		fmt.Fprint(w, `{
			"data": {"user": {"contributionsCollection": {
				"restrictedContributionsCount": 4,
				"contributionCalendar": {
					"totalContributions": 9,
					"weeks": [
						{"contributionDays": [
							{"date": "2024-06-09", "contributionCount": 3},
							{"date": "2024-06-10", "contributionCount": 6}
						]}
					]
				}
			}}}
		}`)
	}))
	defer server.Close()

	client := testClient(server)
	calendar, err := client.FetchCalendar(context.Background(), "mibao",
		time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 9, calendar.TotalContributions)
	assert.Equal(t, 4, calendar.RestrictedCount)
	require.Len(t, calendar.Days, 2)
	assert.Equal(t, "2024-06-09", calendar.Days[0].Date)
	assert.Equal(t, 3, calendar.Days[0].Count)
}

func TestFetchCalendar_GraphQLError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {}, "errors": [{"message": "Could not resolve to a User"}]}`)
	}))
	defer server.Close()

	client := testClient(server)
	_, err := client.FetchCalendar(context.Background(), "nobody", time.Now().AddDate(-1, 0, 0), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not resolve to a User")
}

func TestFetchRepoCommits_Pagination(t *testing.T) {
	t.Parallel()

	pages := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/yqchen0205/family-album/commits", r.URL.Path)
		assert.Equal(t, "mibao@example.com", r.URL.Query().Get("author"))
		assert.Equal(t, "token test-token", r.Header.Get("Authorization"))

		pages++
		page := r.URL.Query().Get("page")
		if page == "1" {
			// A full page forces a second request.
			commits := make([]map[string]any, commitsPerPage)
			for i := range commits {
				commits[i] = map[string]any{
					"sha": fmt.Sprintf("sha-%d", i),
					"commit": map[string]any{
						"author": map[string]any{"date": "2024-06-10T08:00:00Z"},
					},
				}
			}
			require.NoError(t, json.NewEncoder(w).Encode(commits))
			return
		}
		fmt.Fprint(w, `[{"sha": "last", "commit": {"author": {"date": "2024-06-09T10:30:00Z"}}}]`)
	}))
	defer server.Close()

	client := testClient(server)
	events, err := client.FetchRepoCommits(context.Background(),
		"yqchen0205", "family-album", "mibao@example.com",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 2, pages)
	require.Len(t, events, commitsPerPage+1)
	assert.Equal(t, "yqchen0205/family-album", events[0].Repo)
	assert.Equal(t, "last", events[len(events)-1].SHA)
}

func TestFetchRepoCommits_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))
	defer server.Close()

	client := testClient(server)
	_, err := client.FetchRepoCommits(context.Background(), "ghost", "missing", "a@b.c", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestDiscoverRepos(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"user": {"repositories": {"nodes": [
			{"nameWithOwner": "yqchen0205/family-album"},
			{"nameWithOwner": "yqchen0205/recipes"},
			{"nameWithOwner": ""}
		]}}}}`)
	}))
	defer server.Close()

	client := testClient(server)
	repos, err := client.DiscoverRepos(context.Background(), "yqchen0205")
	require.NoError(t, err)
	assert.Equal(t, []string{"yqchen0205/family-album", "yqchen0205/recipes"}, repos)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rate_limit", r.URL.Path)
		w.WriteHeader(status)
	}))
	defer server.Close()

	client := testClient(server)
	assert.NoError(t, client.HealthCheck())

	status = http.StatusUnauthorized
	assert.Error(t, client.HealthCheck())
}

func TestParseRepoSpec(t *testing.T) {
	t.Parallel()

	spec, err := ParseRepoSpec("yqchen0205/family-album=mibao@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, RepoSpec{Owner: "yqchen0205", Name: "family-album", AuthorEmail: "mibao@example.com"}, spec)

	spec, err = ParseRepoSpec("yqchen0205/recipes", "fallback@example.com")
	require.NoError(t, err)
	assert.Equal(t, "fallback@example.com", spec.AuthorEmail)

	_, err = ParseRepoSpec("no-slash", "a@b.c")
	assert.Error(t, err)

	_, err = ParseRepoSpec("owner/repo", "")
	assert.Error(t, err)
}
