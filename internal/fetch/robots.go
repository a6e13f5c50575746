package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/brogergvhs/noveld/internal/providers"

	"github.com/temoto/robotstxt"
)

var ErrDisallowed = errors.New("disallowed by robots.txt")

// RobotsFetcher checks each URL against its host's robots.txt before handing
// it to the wrapped fetcher. Rules are fetched once per host. Hosts whose
// robots.txt cannot be retrieved are allowed.
type RobotsFetcher struct {
	next      providers.Fetcher
	client    Doer
	userAgent string

	mu    sync.Mutex
	rules map[string]*robotstxt.RobotsData
}

func NewRobotsFetcher(next providers.Fetcher, client Doer, userAgent string) *RobotsFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = "*"
	}

	return &RobotsFetcher{
		next:      next,
		client:    client,
		userAgent: userAgent,
		rules:     make(map[string]*robotstxt.RobotsData),
	}
}

func (f *RobotsFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}

	if rules := f.robots(ctx, u); rules != nil && !rules.TestAgent(pathOf(u), f.userAgent) {
		return "", &FetchError{URL: rawURL, Err: ErrDisallowed}
	}

	return f.next.Fetch(ctx, rawURL)
}

func pathOf(u *url.URL) string {
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}

	return p
}

func (f *RobotsFetcher) robots(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	host := strings.ToLower(u.Host)

	f.mu.Lock()
	defer f.mu.Unlock()

	if rules, ok := f.rules[host]; ok {
		return rules
	}

	rules, err := f.load(ctx, u.Scheme+"://"+u.Host+"/robots.txt")
	if err != nil {
		rules = nil
	}
	f.rules[host] = rules

	return rules
}

func (f *RobotsFetcher) load(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build robots request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	return data, nil
}
