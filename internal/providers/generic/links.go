package generic

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/brogergvhs/noveld/internal/providers"
)

const (
	DefaultBaseURL   = "https://www.novelhall.com/"
	DefaultSkipClass = "none"
)

// LinkResolver finds the "next chapter" link of a page.
//
// Relative hrefs are joined onto BaseURL before being resolved against the
// current page. An empty BaseURL resolves against the current page only.
// Anchors carrying SkipClass are ignored.
type LinkResolver struct {
	BaseURL   string
	SkipClass string
}

func NewLinkResolver(baseURL, skipClass string) *LinkResolver {
	return &LinkResolver{BaseURL: baseURL, SkipClass: skipClass}
}

// ResolveNext returns the absolute URL of the first anchor whose text or rel
// is "next". ok is false when the page has no such anchor.
func (r *LinkResolver) ResolveNext(anchors []providers.Anchor, currentURL string) (string, bool, error) {
	for _, a := range anchors {
		if !a.HasHref {
			continue
		}
		if r.SkipClass != "" && a.HasClass(r.SkipClass) {
			continue
		}
		if !isNext(a) {
			continue
		}

		next, err := r.absolutize(a.Href, currentURL)
		if err != nil {
			return "", false, err
		}

		return next, true, nil
	}

	return "", false, nil
}

func isNext(a providers.Anchor) bool {
	return strings.ToLower(strings.TrimSpace(a.Text)) == "next" ||
		strings.TrimSpace(a.Rel) == "next"
}

func (r *LinkResolver) absolutize(href, currentURL string) (string, error) {
	href = strings.TrimSpace(href)

	u, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("next link %q: %w", href, err)
	}

	if !u.IsAbs() && u.Host == "" && r.BaseURL != "" {
		joined := strings.TrimRight(r.BaseURL, "/") + "/" + strings.TrimLeft(href, "/")
		if u, err = url.Parse(joined); err != nil {
			return "", fmt.Errorf("next link %q: %w", joined, err)
		}
	}

	base, err := url.Parse(currentURL)
	if err != nil {
		return "", fmt.Errorf("current url %q: %w", currentURL, err)
	}

	return base.ResolveReference(u).String(), nil
}
