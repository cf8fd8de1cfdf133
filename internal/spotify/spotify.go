// Package spotify looks up a track for the favorite-song answer. A failed
// lookup never blocks the core pipeline; callers treat it as "no match".
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	tokenURL  = "https://accounts.spotify.com/api/token"
	searchURL = "https://api.spotify.com/v1/search"
)

// TokenCache holds a client-credentials token between calls. The cache is
// owned by the caller and passed back in; the client keeps no state.
type TokenCache struct {
	Token     string
	ExpiresAt time.Time
}

type Client struct {
	clientID     string
	clientSecret string
	tokenURL     string
	searchURL    string
	httpc        *http.Client
	log          zerolog.Logger
	now          func() time.Time
}

func NewClient(clientID, clientSecret string, log zerolog.Logger) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		searchURL:    searchURL,
		httpc:        &http.Client{Timeout: 10 * time.Second},
		log:          log,
		now:          time.Now,
	}
}

// Enabled reports whether credentials are configured.
func (c *Client) Enabled() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// Track is a search hit.
type Track struct {
	TrackID    string `json:"trackId"`
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
	AlbumArt   string `json:"albumArt,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	SpotifyURI string `json:"spotifyUri"`
}

// Token returns a valid access token, refreshing the cache when expired.
// Tokens are cached 60s short of their reported lifetime.
func (c *Client) Token(ctx context.Context, cache *TokenCache) (string, error) {
	if cache.Token != "" && c.now().Before(cache.ExpiresAt) {
		return cache.Token, nil
	}

	creds := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+creds)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("spotify auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("spotify auth failed (%d)", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode spotify token: %w", err)
	}

	cache.Token = body.AccessToken
	cache.ExpiresAt = c.now().Add(time.Duration(body.ExpiresIn-60) * time.Second)
	return cache.Token, nil
}

// SearchTrack returns the top track hit for the query, or nil when there
// is none.
func (c *Client) SearchTrack(ctx context.Context, query, token string) (*Track, error) {
	params := url.Values{
		"q":     {query},
		"type":  {"track"},
		"limit": {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("spotify search failed (%d)", resp.StatusCode)
	}

	var body struct {
		Tracks struct {
			Items []struct {
				ID      string `json:"id"`
				Name    string `json:"name"`
				URI     string `json:"uri"`
				Artists []struct {
					Name string `json:"name"`
				} `json:"artists"`
				Album struct {
					Images []struct {
						URL string `json:"url"`
					} `json:"images"`
				} `json:"album"`
				PreviewURL string `json:"preview_url"`
			} `json:"items"`
		} `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode spotify search: %w", err)
	}

	if len(body.Tracks.Items) == 0 {
		return nil, nil
	}
	hit := body.Tracks.Items[0]

	names := make([]string, len(hit.Artists))
	for i, a := range hit.Artists {
		names[i] = a.Name
	}
	track := &Track{
		TrackID:    hit.ID,
		TrackName:  hit.Name,
		ArtistName: strings.Join(names, ", "),
		PreviewURL: hit.PreviewURL,
		SpotifyURI: hit.URI,
	}
	if len(hit.Album.Images) > 0 {
		track.AlbumArt = hit.Album.Images[0].URL
	}
	return track, nil
}

// SearchSong is the convenience path used by the API: token (cached) then
// search. Empty queries and missing credentials return no match without
// error.
func (c *Client) SearchSong(ctx context.Context, cache *TokenCache, query string) (*Track, error) {
	if query == "" || !c.Enabled() {
		return nil, nil
	}
	token, err := c.Token(ctx, cache)
	if err != nil {
		return nil, err
	}
	return c.SearchTrack(ctx, query, token)
}
