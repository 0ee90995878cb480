package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mvoloshin/personify/internal/model"
	"github.com/mvoloshin/personify/internal/util"
	"golang.org/x/time/rate"
)

const (
	maxPageSize = 100
	maxBodyByte = 4 << 20

	// Fixed sleep before retrying a throttled request
	retrySleep = 2 * time.Second
)

// HTTPClient implements Client against the Reddit OAuth API
type HTTPClient struct {
	httpClient *http.Client
	cfg        model.RedditConfig
	limiter    *rate.Limiter

	mu       sync.Mutex
	token    string
	tokenExp time.Time

	// sleep is injectable for tests
	sleep func(time.Duration)
}

// NewHTTPClient builds the API client. ClientID and ClientSecret are
// required; Username/Password switch the token request to the password
// grant for authenticated access.
func NewHTTPClient(cfg model.RedditConfig) (*HTTPClient, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("reddit: client ID and secret are required")
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("reddit: user agent is required")
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &HTTPClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		sleep:      time.Sleep,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a cached bearer token, refreshing when expired
func (c *HTTPClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp) {
		return c.token, nil
	}

	form := url.Values{}
	if c.cfg.Username != "" && c.cfg.Password != "" {
		form.Set("grant_type", "password")
		form.Set("username", c.cfg.Username)
		form.Set("password", c.cfg.Password)
	} else {
		form.Set("grant_type", "client_credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request: unexpected status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyByte)).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token request: empty access token")
	}

	c.token = tok.AccessToken
	// Refresh a minute early so in-flight pagination never straddles expiry
	c.tokenExp = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)

	return c.token, nil
}

// get performs one rate-limited API request with bounded 429 retries
func (c *HTTPClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		token, err := c.accessToken(ctx)
		if err != nil {
			return nil, err
		}

		u := c.cfg.BaseURL + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("User-Agent", c.cfg.UserAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("reddit: request %s: %w", path, err)
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyByte))
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return nil, fmt.Errorf("reddit: read response: %w", readErr)
			}
			return body, nil

		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, path)

		case resp.StatusCode == http.StatusTooManyRequests:
			if attempt >= c.cfg.MaxRetries {
				return nil, fmt.Errorf("%w: gave up after %d attempts", ErrRateLimited, attempt+1)
			}
			c.sleep(retrySleep)

		case resp.StatusCode == http.StatusUnauthorized:
			// Token may have been revoked; force a refresh and retry once
			if attempt >= 1 {
				return nil, fmt.Errorf("reddit: unauthorized for %s", path)
			}
			c.mu.Lock()
			c.token = ""
			c.mu.Unlock()

		default:
			return nil, fmt.Errorf("reddit: unexpected status %d for %s", resp.StatusCode, path)
		}
	}
}

type aboutResponse struct {
	Data struct {
		Name         string  `json:"name"`
		CreatedUTC   float64 `json:"created_utc"`
		LinkKarma    int     `json:"link_karma"`
		CommentKarma int     `json:"comment_karma"`
		IsSuspended  bool    `json:"is_suspended"`
	} `json:"data"`
}

// About fetches account metadata. Suspended accounts report ErrUserNotFound.
func (c *HTTPClient) About(ctx context.Context, username string) (model.UserMeta, error) {
	body, err := c.get(ctx, "/user/"+url.PathEscape(username)+"/about", nil)
	if err != nil {
		return model.UserMeta{}, err
	}

	var about aboutResponse
	if err := json.Unmarshal(body, &about); err != nil {
		return model.UserMeta{}, fmt.Errorf("reddit: decode about: %w", err)
	}
	if about.Data.IsSuspended {
		return model.UserMeta{}, fmt.Errorf("%w: %s is suspended", ErrUserNotFound, username)
	}

	return model.UserMeta{
		Username:     username,
		CreatedUTC:   int64(about.Data.CreatedUTC),
		LinkKarma:    about.Data.LinkKarma,
		CommentKarma: about.Data.CommentKarma,
	}, nil
}

type listingResponse struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type submissionData struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Selftext     string  `json:"selftext"`
	SelftextHTML string  `json:"selftext_html"`
	Subreddit    string  `json:"subreddit"`
	Permalink    string  `json:"permalink"`
	Score        int     `json:"score"`
	CreatedUTC   float64 `json:"created_utc"`
}

type commentData struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	BodyHTML   string  `json:"body_html"`
	LinkTitle  string  `json:"link_title"`
	Subreddit  string  `json:"subreddit"`
	Permalink  string  `json:"permalink"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
}

// Submissions pages through /user/<name>/submitted up to limit items
func (c *HTTPClient) Submissions(ctx context.Context, username string, limit int) ([]model.TextItem, error) {
	return c.listing(ctx, username, "submitted", limit, func(raw json.RawMessage) (model.TextItem, error) {
		var s submissionData
		if err := json.Unmarshal(raw, &s); err != nil {
			return model.TextItem{}, err
		}
		body := s.Selftext
		if body == "" && s.SelftextHTML != "" {
			body = util.StripHTML(s.SelftextHTML)
		}
		return model.TextItem{
			Kind:       model.ItemKindPost,
			ID:         s.ID,
			URL:        "https://reddit.com" + s.Permalink,
			Title:      s.Title,
			Body:       body,
			Subreddit:  s.Subreddit,
			Score:      s.Score,
			CreatedUTC: int64(s.CreatedUTC),
		}, nil
	})
}

// Comments pages through /user/<name>/comments up to limit items
func (c *HTTPClient) Comments(ctx context.Context, username string, limit int) ([]model.TextItem, error) {
	return c.listing(ctx, username, "comments", limit, func(raw json.RawMessage) (model.TextItem, error) {
		var cm commentData
		if err := json.Unmarshal(raw, &cm); err != nil {
			return model.TextItem{}, err
		}
		body := cm.Body
		if body == "" && cm.BodyHTML != "" {
			body = util.StripHTML(cm.BodyHTML)
		}
		return model.TextItem{
			Kind:       model.ItemKindComment,
			ID:         cm.ID,
			URL:        "https://reddit.com" + cm.Permalink,
			Title:      cm.LinkTitle,
			Body:       body,
			Subreddit:  cm.Subreddit,
			Score:      cm.Score,
			CreatedUTC: int64(cm.CreatedUTC),
		}, nil
	})
}

// listing walks one listing endpoint with after-cursor pagination,
// sleeping the fixed request delay between pages
func (c *HTTPClient) listing(ctx context.Context, username, endpoint string, limit int, decode func(json.RawMessage) (model.TextItem, error)) ([]model.TextItem, error) {
	if limit <= 0 {
		return nil, nil
	}

	var items []model.TextItem
	after := ""

	for len(items) < limit {
		pageSize := limit - len(items)
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}

		query := url.Values{}
		query.Set("limit", fmt.Sprintf("%d", pageSize))
		query.Set("raw_json", "1")
		if after != "" {
			query.Set("after", after)
		}

		body, err := c.get(ctx, "/user/"+url.PathEscape(username)+"/"+endpoint, query)
		if err != nil {
			return nil, err
		}

		var page listingResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("reddit: decode %s listing: %w", endpoint, err)
		}

		for _, child := range page.Data.Children {
			item, err := decode(child.Data)
			if err != nil {
				return nil, fmt.Errorf("reddit: decode %s item: %w", endpoint, err)
			}
			items = append(items, item)
			if len(items) >= limit {
				break
			}
		}

		if page.Data.After == "" || len(page.Data.Children) == 0 {
			break
		}
		after = page.Data.After

		if c.cfg.RequestDelay > 0 {
			c.sleep(c.cfg.RequestDelay)
		}
	}

	return items, nil
}
