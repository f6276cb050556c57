// Package portal implements an HTTPS client for the mod portal, grounded
// in the original factorio-mods-web API: mod lookup, paginated search,
// login, and authenticated download.
package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/outpost-tools/fac-resolve/internal/applog"
	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/installable"
	"github.com/outpost-tools/fac-resolve/internal/resolve"
	"github.com/outpost-tools/fac-resolve/internal/semver"
)

// ErrNotFound is returned when the portal answers 404 for a mod name. It
// satisfies errors.Is(err, resolve.ErrNotFound) so Client implements
// resolve.Portal directly.
var ErrNotFound = resolve.ErrNotFound

// Credentials authenticate a download against the portal.
type Credentials struct {
	Username string
	Token    string
}

// Client is an HTTPS resolve.Portal backed by the mod portal's JSON API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

// New constructs a Client against the given base URL (e.g.
// "https://mods.factorio.com"), rate limited to avoid overwhelming the
// portal during a deep dependency walk.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

type modResponse struct {
	Name     string            `json:"name"`
	Releases []releaseResponse `json:"releases"`
}

type releaseResponse struct {
	Version        string   `json:"version"`
	FactorioVersion string  `json:"factorio_version"`
	Dependencies   []string `json:"dependencies"`
	DownloadURL    string   `json:"download_url"`
	FileName       string   `json:"file_name"`
	FileSize       uint64   `json:"file_size"`
}

// Get implements resolve.Portal.
func (c *Client) Get(ctx context.Context, name dep.ModName) (resolve.Mod, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return resolve.Mod{}, err
	}

	u := c.BaseURL + "/api/mods/" + url.PathEscape(string(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return resolve.Mod{}, fmt.Errorf("building request for %q: %w", name, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return resolve.Mod{}, fmt.Errorf("fetching %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		applog.Infof("portal: %s not found", name)
		return resolve.Mod{}, fmt.Errorf("mod %q: %w", name, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return resolve.Mod{}, fmt.Errorf("fetching %q: unexpected status %s", name, resp.Status)
	}

	var body modResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return resolve.Mod{}, fmt.Errorf("decoding response for %q: %w", name, err)
	}

	mod := resolve.Mod{Name: name, Releases: make([]installable.Release, 0, len(body.Releases))}
	for _, r := range body.Releases {
		release, err := toRelease(name, r)
		if err != nil {
			return resolve.Mod{}, fmt.Errorf("release of %q: %w", name, err)
		}
		mod.Releases = append(mod.Releases, release)
	}
	return mod, nil
}

func toRelease(name dep.ModName, r releaseResponse) (installable.Release, error) {
	version, err := semver.Parse(r.Version)
	if err != nil {
		return installable.Release{}, fmt.Errorf("version %q: %w", r.Version, err)
	}
	gameVersionReq, err := parseGameVersionReq(r.FactorioVersion)
	if err != nil {
		return installable.Release{}, err
	}
	deps := make([]dep.Dependency, 0, len(r.Dependencies))
	for _, s := range r.Dependencies {
		d, err := dep.Parse(s)
		if err != nil {
			return installable.Release{}, fmt.Errorf("dependency %q: %w", s, err)
		}
		deps = append(deps, d)
	}
	return installable.Release{
		Name:           name,
		Version:        version,
		GameVersionReq: gameVersionReq,
		Dependencies:   deps,
		DownloadURL:    r.DownloadURL,
		FileName:       r.FileName,
		FileSize:       r.FileSize,
	}, nil
}

// SearchOrder selects the ordering of a mod search's results.
type SearchOrder string

const (
	OrderAlphabetical   SearchOrder = "alpha"
	OrderMostDownloaded SearchOrder = "top"
	OrderRecentlyUpdated SearchOrder = "updated"
)

// SearchResult is one entry in a search response page.
type SearchResult struct {
	Name  dep.ModName
	Title string
	Summary string
}

type searchResponse struct {
	Results []struct {
		Name    string `json:"name"`
		Title   string `json:"title"`
		Summary string `json:"summary"`
	} `json:"results"`
	Pagination struct {
		PageCount int `json:"page_count"`
	} `json:"pagination"`
}

// Search queries the portal's mod list endpoint for mods matching query,
// returning a single page of results and the total page count.
func (c *Client) Search(ctx context.Context, query string, order SearchOrder, page int) ([]SearchResult, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}
	if order == "" {
		order = OrderMostDownloaded
	}
	if page < 1 {
		page = 1
	}

	u, err := url.Parse(c.BaseURL + "/api/mods")
	if err != nil {
		return nil, 0, fmt.Errorf("building search URL: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("order", string(order))
	q.Set("page", fmt.Sprint(page))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building search request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("searching %q: %w", query, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("searching %q: unexpected status %s", query, resp.Status)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("decoding search response: %w", err)
	}
	results := make([]SearchResult, 0, len(body.Results))
	for _, r := range body.Results {
		results = append(results, SearchResult{Name: dep.ModName(r.Name), Title: r.Title, Summary: r.Summary})
	}
	return results, body.Pagination.PageCount, nil
}

type loginResponse []string

// Login authenticates against the portal's login endpoint and returns
// Credentials usable with Download.
func (c *Client) Login(ctx context.Context, username, password string) (Credentials, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Credentials{}, err
	}

	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api-login", strings.NewReader(form.Encode()))
	if err != nil {
		return Credentials{}, fmt.Errorf("building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Credentials{}, fmt.Errorf("logging in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		var failure struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&failure)
		return Credentials{}, fmt.Errorf("login failed: %s", failure.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return Credentials{}, fmt.Errorf("logging in: unexpected status %s", resp.Status)
	}

	var tokens loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil || len(tokens) == 0 {
		return Credentials{}, fmt.Errorf("decoding login response: %w", err)
	}
	return Credentials{Username: username, Token: tokens[0]}, nil
}

// Download fetches the release's archive, verifying the response's
// Content-Length against the release's declared FileSize before handing
// the body back to the caller. The caller must close the returned
// io.ReadCloser.
func (c *Client) Download(ctx context.Context, release installable.Release, creds Credentials) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := url.Parse(c.BaseURL + release.DownloadURL)
	if err != nil {
		return nil, fmt.Errorf("building download URL for %q: %w", release.Name, err)
	}
	q := u.Query()
	q.Set("username", creds.Username)
	q.Set("token", creds.Token)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building download request for %q: %w", release.Name, err)
	}
	req.Header.Set("Accept", "application/zip")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %q: %w", release.Name, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("downloading %q: unexpected status %s", release.Name, resp.Status)
	}

	if resp.ContentLength >= 0 && uint64(resp.ContentLength) != release.FileSize {
		resp.Body.Close()
		return nil, fmt.Errorf("downloading %q: got %d bytes, expected %d", release.Name, resp.ContentLength, release.FileSize)
	}
	return resp.Body, nil
}

// parseGameVersionReq interprets the portal's factorio_version field, a
// bare version such as "0.18" meaning "this release targets 0.18 and
// later", as a >= floor. The portal never emits anything but a bare
// version in this field.
func parseGameVersionReq(s string) (semver.Req, error) {
	if s == "" {
		return semver.Any, nil
	}
	v, err := semver.Parse(s)
	if err != nil {
		return semver.Req{}, fmt.Errorf("game version %q: %w", s, err)
	}
	return semver.Req{Op: semver.OpGE, Version: v}, nil
}
