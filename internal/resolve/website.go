// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/pkg/types"
)

// maxPageBytes bounds how much of a web page is read to find its title.
const maxPageBytes = 512 << 10

var (
	titleTag    = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	siteNameTag = regexp.MustCompile(`(?is)<meta[^>]+property=["']og:site_name["'][^>]+content=["']([^"']+)["']`)
	authorTag   = regexp.MustCompile(`(?is)<meta[^>]+name=["']author["'][^>]+content=["']([^"']+)["']`)
)

// website builds website metadata for url with today's access date. The
// page is fetched for its title, site name, and author; when the fetch
// fails the entry is still returned, titled from the URL path.
func (r *Resolver) website(ctx context.Context, rawURL string) (types.SourceMetadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return types.SourceMetadata{}, err
	}
	m := types.SourceMetadata{
		Title:           titleFromPath(u),
		PublicationName: strings.TrimPrefix(u.Hostname(), "www."),
		URL:             rawURL,
		AccessDate:      r.now().Format(time.DateOnly),
		SourceType:      types.SourceWebsite,
	}

	page, err := r.fetchPage(ctx, rawURL)
	if err != nil {
		if ctx.Err() != nil {
			return types.SourceMetadata{}, ctx.Err()
		}
		r.logger.Warn("could not fetch page, using URL for title", zap.String("url", rawURL), zap.Error(err))
		return m, nil
	}

	if t := firstMatch(titleTag, page); t != "" {
		m.Title = t
	}
	if s := firstMatch(siteNameTag, page); s != "" {
		m.PublicationName = s
	}
	if a := firstMatch(authorTag, page); a != "" {
		m.Authors = []string{a}
	}
	return m, nil
}

func (r *Resolver) fetchPage(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(m[1])), " ")
}

// titleFromPath derives a readable title from the last path segment,
// falling back to the host name.
func titleFromPath(u *url.URL) string {
	base := path.Base(u.Path)
	if base == "" || base == "." || base == "/" {
		return u.Hostname()
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	if strings.TrimSpace(base) == "" {
		return u.Hostname()
	}
	return base
}
