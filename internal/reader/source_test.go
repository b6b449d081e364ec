package reader

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/olgasafonova/reddit-content-mcp-server/internal/base"
	"github.com/olgasafonova/reddit-content-mcp-server/internal/config"
	apierrors "github.com/olgasafonova/reddit-content-mcp-server/internal/errors"
)

const (
	hotPageOne = `{"kind":"Listing","data":{"after":"t3_b","children":[
		{"kind":"t3","data":{"id":"a","name":"t3_a","title":"Go 1.24 released","score":120,"num_comments":14,
			"author":"gopher","permalink":"/r/golang/comments/a/go_124_released/","url":"https://go.dev/blog/go1.24","is_self":false}},
		{"kind":"t3","data":{"id":"b","name":"t3_b","title":"Weekly questions","score":8,"num_comments":30,
			"author":"[deleted]","permalink":"/r/golang/comments/b/weekly_questions/","url":"https://www.reddit.com/r/golang/comments/b/weekly_questions/","is_self":true,"selftext":""}}
	]}}`

	hotPageTwo = `{"kind":"Listing","data":{"after":null,"children":[
		{"kind":"t3","data":{"id":"c","name":"t3_c","title":"Gophers at the meetup","score":55,"num_comments":3,
			"author":"rsc","permalink":"/r/golang/comments/c/gophers/","url":"https://www.reddit.com/gallery/c","is_self":false}}
	]}}`

	discussion = `[
		{"kind":"Listing","data":{"children":[
			{"kind":"t3","data":{"id":"abc","name":"t3_abc","title":"Why Go?","score":42,"num_comments":3,
				"author":"gopher","permalink":"/r/golang/comments/abc/why_go/","is_self":true,"selftext":"Discuss."}}
		]}},
		{"kind":"Listing","data":{"children":[
			{"kind":"t1","data":{"id":"c1","name":"t1_c1","author":"[deleted]","body":"Simplicity.","score":7,
				"replies":{"kind":"Listing","data":{"children":[
					{"kind":"t1","data":{"id":"c2","name":"t1_c2","author":"rob","body":"Agreed.","score":3,"replies":""}}
				]}}}},
			{"kind":"t1","data":{"id":"c3","name":"t1_c3","author":"ken","body":"Tooling.","score":5,"replies":""}},
			{"kind":"more","data":{"id":"c9","name":"t1_c9","count":1,"children":["c9"]}}
		]}}
	]`
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readConfig() *config.Config {
	return &config.Config{
		UserAgent:         "reader-test/1.0",
		Timeout:           5 * time.Second,
		RequestsPerMinute: 6000,
	}
}

// recordedRequest is what the fake Reddit saw.
type recordedRequest struct {
	path  string
	query url.Values
	agent string
	auth  string
}

type fakeReddit struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeReddit) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{
		path:  r.URL.Path,
		query: r.URL.Query(),
		agent: r.Header.Get("User-Agent"),
		auth:  r.Header.Get("Authorization"),
	})
}

func (f *fakeReddit) seen() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func newSourceClient(t *testing.T, cfg *config.Config, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	rc, err := base.NewReadClient(context.Background(), cfg, base.WithBaseURL(ts.URL), base.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewReadClient failed: %v", err)
	}
	return NewClient(NewRedditSource(rc), WithLogger(quietLogger()))
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func TestRedditSource_HotPaging(t *testing.T) {
	fake := &fakeReddit{}
	mux := http.NewServeMux()
	mux.HandleFunc("/r/golang/hot", func(w http.ResponseWriter, r *http.Request) {
		fake.record(r)
		if r.URL.Query().Get("after") == "t3_b" {
			writeJSON(w, hotPageTwo)
			return
		}
		writeJSON(w, hotPageOne)
	})
	client := newSourceClient(t, readConfig(), mux)

	count := 3
	result, err := client.FetchTrendingPostsMCP(context.Background(), FetchTrendingPostsArgs{
		Community: "r/golang",
		Count:     &count,
	})
	if err != nil {
		t.Fatalf("FetchTrendingPostsMCP failed: %v", err)
	}

	reqs := fake.seen()
	if len(reqs) != 2 {
		t.Fatalf("requests = %d, want 2", len(reqs))
	}
	if got := reqs[0].query.Get("limit"); got != "3" {
		t.Errorf("first page limit = %q, want 3", got)
	}
	if reqs[0].query.Has("after") {
		t.Errorf("first page should not send after, got %q", reqs[0].query.Get("after"))
	}
	if got := reqs[1].query.Get("limit"); got != "1" {
		t.Errorf("second page limit = %q, want 1", got)
	}
	if got := reqs[1].query.Get("after"); got != "t3_b" {
		t.Errorf("second page after = %q, want t3_b", got)
	}
	for i, req := range reqs {
		if req.agent != "reader-test/1.0" {
			t.Errorf("request %d User-Agent = %q", i, req.agent)
		}
	}

	if result.Community != "golang" || result.Count != 3 || result.Empty {
		t.Errorf("result = %+v", result)
	}
	for _, want := range []string{
		"## Go 1.24 released\n* Upvotes: 120\n* Comments: 14\n* Author: u/gopher\n* Type: external_link\n",
		"* Content: External link: https://reddit.com/r/golang/comments/a/go_124_released/",
		"## Weekly questions\n* Upvotes: 8\n* Comments: 30\n* Author: u/[deleted]\n* Type: text_post\n* Content: No text content available\n",
		"* Type: image_gallery\n* Content: Gallery with multiple images: https://www.reddit.com/gallery/c\n",
		"* Link: https://reddit.com/r/golang/comments/c/gophers/\n---",
	} {
		if !strings.Contains(result.Text, want) {
			t.Errorf("text missing %q\ngot:\n%s", want, result.Text)
		}
	}
	if strings.Index(result.Text, "Go 1.24") > strings.Index(result.Text, "Gophers at the meetup") {
		t.Error("posts should keep listing order")
	}
}

func TestRedditSource_HotListingEndsEarly(t *testing.T) {
	fake := &fakeReddit{}
	client := newSourceClient(t, readConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.record(r)
		writeJSON(w, hotPageTwo)
	}))

	result, err := client.FetchTrendingPostsMCP(context.Background(), FetchTrendingPostsArgs{Community: "golang"})
	if err != nil {
		t.Fatalf("FetchTrendingPostsMCP failed: %v", err)
	}
	if result.Count != 1 {
		t.Errorf("Count = %d, want 1", result.Count)
	}
	reqs := fake.seen()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1 (no cursor to follow)", len(reqs))
	}
	if reqs[0].path != "/r/golang/hot" || reqs[0].query.Get("limit") != "10" {
		t.Errorf("request = %s?%s, want /r/golang/hot?limit=10", reqs[0].path, reqs[0].query.Encode())
	}
}

func TestRedditSource_Discussion(t *testing.T) {
	fake := &fakeReddit{}
	mux := http.NewServeMux()
	mux.HandleFunc("/comments/abc", func(w http.ResponseWriter, r *http.Request) {
		fake.record(r)
		writeJSON(w, discussion)
	})
	client := newSourceClient(t, readConfig(), mux)

	result, err := client.FetchPostDiscussionMCP(context.Background(), FetchPostDiscussionArgs{ThreadID: "t3_abc"})
	if err != nil {
		t.Fatalf("FetchPostDiscussionMCP failed: %v", err)
	}

	reqs := fake.seen()
	if len(reqs) != 2 {
		t.Fatalf("requests = %d, want post then comments", len(reqs))
	}
	if len(reqs[0].query) != 0 {
		t.Errorf("post request query = %q, want none", reqs[0].query.Encode())
	}
	tree := reqs[1].query
	if tree.Get("sort") != "top" || tree.Get("limit") != "20" || tree.Get("depth") != "3" {
		t.Errorf("comment tree query = %q, want sort=top limit=20 depth=3", tree.Encode())
	}

	want := "# Discussion Analysis: Why Go?\n" +
		"* Upvotes: 42\n" +
		"* Author: u/gopher\n" +
		"* Content type: text_post\n" +
		"* Content: Discuss.\n" +
		"\n## Discussion Overview\n" +
		"### Top Comments:\n" +
		"Comment by [anonymous] (votes: 7)\n" +
		"Simplicity.\n" +
		"  └─ Comment by rob (votes: 3)\n" +
		"  └─   Agreed.\n" +
		"\n" +
		"Comment by ken (votes: 5)\n" +
		"Tooling.\n"
	if result.Text != want {
		t.Errorf("text mismatch\ngot:\n%s\nwant:\n%s", result.Text, want)
	}
	if result.ThreadID != "abc" || result.CommentCount != 2 || result.ContentKind != "text_post" {
		t.Errorf("result = %+v", result)
	}
}

func TestRedditSource_DiscussionBounds(t *testing.T) {
	fake := &fakeReddit{}
	client := newSourceClient(t, readConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.record(r)
		writeJSON(w, discussion)
	}))

	maxComments, depth := 1, 1
	result, err := client.FetchPostDiscussionMCP(context.Background(), FetchPostDiscussionArgs{
		ThreadID:         "abc",
		MaxComments:      &maxComments,
		CommentTreeDepth: &depth,
	})
	if err != nil {
		t.Fatalf("FetchPostDiscussionMCP failed: %v", err)
	}

	reqs := fake.seen()
	if got := reqs[len(reqs)-1].query; got.Get("limit") != "1" || got.Get("depth") != "1" {
		t.Errorf("comment tree query = %q, want limit=1 depth=1", got.Encode())
	}
	if strings.Contains(result.Text, "Agreed.") || strings.Contains(result.Text, "Tooling.") {
		t.Errorf("replies and extra comments should be cut:\n%s", result.Text)
	}
	if result.CommentCount != 1 {
		t.Errorf("CommentCount = %d, want 1", result.CommentCount)
	}
}

func TestRedditSource_AppOnlyToken(t *testing.T) {
	cfg := readConfig()
	cfg.ClientID = "app-id"
	cfg.ClientSecret = "app-secret"

	fake := &fakeReddit{}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		id, secret, ok := r.BasicAuth()
		if !ok || id != "app-id" || secret != "app-secret" {
			http.Error(w, "bad client", http.StatusUnauthorized)
			return
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
			http.Error(w, "bad grant", http.StatusBadRequest)
			return
		}
		writeJSON(w, `{"access_token":"app-token","token_type":"bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/r/golang/hot", func(w http.ResponseWriter, r *http.Request) {
		fake.record(r)
		writeJSON(w, hotPageTwo)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	rc, err := base.NewReadClient(context.Background(), cfg,
		base.WithBaseURL(ts.URL),
		base.WithEndpoint(base.Endpoint{TokenURL: ts.URL + "/token"}),
		base.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewReadClient failed: %v", err)
	}
	client := NewClient(NewRedditSource(rc), WithLogger(quietLogger()))

	if _, err := client.FetchTrendingPostsMCP(context.Background(), FetchTrendingPostsArgs{Community: "golang"}); err != nil {
		t.Fatalf("FetchTrendingPostsMCP failed: %v", err)
	}
	reqs := fake.seen()
	if len(reqs) != 1 || reqs[0].auth != "Bearer app-token" {
		t.Errorf("requests = %+v, want one bearer-authenticated listing call", reqs)
	}
}

func TestRedditSource_Failures(t *testing.T) {
	tests := []struct {
		name string
		call func(*Client) error
	}{
		{
			name: "hot listing",
			call: func(c *Client) error {
				_, err := c.FetchTrendingPostsMCP(context.Background(), FetchTrendingPostsArgs{Community: "golang"})
				return err
			},
		},
		{
			name: "discussion",
			call: func(c *Client) error {
				_, err := c.FetchPostDiscussionMCP(context.Background(), FetchPostDiscussionArgs{ThreadID: "abc"})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newSourceClient(t, readConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				writeJSON(w, `{"message":"Forbidden","error":403}`)
			}))

			err := tt.call(client)
			var toolErr *apierrors.ToolError
			if !errors.As(err, &toolErr) {
				t.Fatalf("err = %v, want a tool error", err)
			}
			if toolErr.Code != apierrors.CodeRemoteFailure {
				t.Errorf("code = %s, want %s", toolErr.Code, apierrors.CodeRemoteFailure)
			}
		})
	}
}
