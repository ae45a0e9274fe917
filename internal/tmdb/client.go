package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dramahub/pkg/models"
	"dramahub/pkg/utils"
)

// Error kinds the rest of the system cares about. Transport failures, auth
// failures and malformed payloads all fold into ErrUpstream; only a provider
// 404 is distinguishable, because show resolution needs it to fall through
// from movie to series.
var (
	ErrUpstream = errors.New("failed to fetch from external provider")
	ErrNotFound = errors.New("not found on provider")
)

// Client talks to the TMDB v3 API. It owns the image-URL convention: every
// relative poster/profile path is turned into an absolute CDN URL here, never
// by callers.
type Client struct {
	cfg    utils.TMDBConfig
	client *http.Client
}

func New(cfg utils.TMDBConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// kindPath maps our media kinds onto TMDB's URL segments. We store "series",
// TMDB says "tv".
func kindPath(kind string) string {
	if kind == models.KindSeries {
		return "tv"
	}
	return "movie"
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values, out any) error {
	u, err := url.Parse(c.cfg.BaseURL + endpoint)
	if err != nil {
		return fmt.Errorf("tmdb: parse url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.cfg.APIKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("tmdb: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, endpoint)
	case resp.StatusCode != http.StatusOK:
		// 401 and friends: callers never need the provider's error body
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return nil
}

// ImageURL joins the CDN base, a size segment and a relative provider path.
// Returns "" for an empty path so callers can store NULL-ish values directly.
func (c *Client) ImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.cfg.ImageBaseURL + "/" + size + path
}

// --- shows ---

func (c *Client) MovieDetail(ctx context.Context, id int64) (*ShowPayload, error) {
	var out ShowPayload
	if err := c.fetch(ctx, fmt.Sprintf("/movie/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SeriesDetail(ctx context.Context, id int64) (*ShowPayload, error) {
	var out ShowPayload
	if err := c.fetch(ctx, fmt.Sprintf("/tv/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PopularMovies lists currently popular Korean movies. The vote-count floor
// filters out low-quality noise.
func (c *Client) PopularMovies(ctx context.Context) ([]ShowPayload, error) {
	params := url.Values{}
	params.Set("with_original_language", "ko")
	params.Set("sort_by", "popularity.desc")
	params.Set("vote_count.gte", "100")

	var out showListPayload
	if err := c.fetch(ctx, "/discover/movie", params, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) PopularSeries(ctx context.Context) ([]ShowPayload, error) {
	params := url.Values{}
	params.Set("with_original_language", "ko")
	params.Set("sort_by", "popularity.desc")
	params.Set("vote_count.gte", "50")

	var out showListPayload
	if err := c.fetch(ctx, "/discover/tv", params, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) SearchMulti(ctx context.Context, query string) ([]ShowPayload, error) {
	params := url.Values{}
	params.Set("query", query)

	var out showListPayload
	if err := c.fetch(ctx, "/search/multi", params, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// --- enrichment ---

func (c *Client) Credits(ctx context.Context, kind string, id int64) (*CreditsPayload, error) {
	var out CreditsPayload
	if err := c.fetch(ctx, fmt.Sprintf("/%s/%d/credits", kindPath(kind), id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Videos(ctx context.Context, kind string, id int64) (*VideosPayload, error) {
	var out VideosPayload
	if err := c.fetch(ctx, fmt.Sprintf("/%s/%d/videos", kindPath(kind), id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- people ---

func (c *Client) PopularPeople(ctx context.Context) ([]PersonPayload, error) {
	var out personListPayload
	if err := c.fetch(ctx, "/person/popular", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) PersonDetail(ctx context.Context, id int64) (*PersonPayload, error) {
	var out PersonPayload
	if err := c.fetch(ctx, fmt.Sprintf("/person/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PersonCredits(ctx context.Context, id int64) ([]PersonCreditPayload, error) {
	var out personCreditsPayload
	if err := c.fetch(ctx, fmt.Sprintf("/person/%d/combined_credits", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Cast, nil
}

// --- genres ---

func (c *Client) Genres(ctx context.Context, kind string) ([]GenrePayload, error) {
	var out genreListPayload
	if err := c.fetch(ctx, fmt.Sprintf("/genre/%s/list", kindPath(kind)), nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}
