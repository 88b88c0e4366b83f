// Package yandex implements the authenticated Yandex Music private API
// client used by the downloader: account info, album/playlist metadata,
// signed file-info and lyrics requests, and raw media/cover fetches.
package yandex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/xeptore/yamusic/httputil"
	"github.com/xeptore/yamusic/must"
	"github.com/xeptore/yamusic/yandex/sign"
	"github.com/xeptore/yamusic/yandex/types"
)

const (
	DefaultBaseURL = "https://api.music.yandex.net"
	UserAgent      = "YandexMusicDesktopAppWindows/5.20.2"

	clientHeaderName = "X-Yandex-Music-Client"

	apiRequestTimeout = 30 * time.Second
)

var (
	ErrUnauthorized     = errors.New("token was not accepted by the API")
	ErrPlusRequired     = errors.New("active Plus subscription required")
	ErrNoLyrics         = errors.New("track has no lyrics")
	ErrPlaylistNotFound = errors.New("playlist is not present in user's playlists")
)

type Client struct {
	api     *http.Client
	media   *http.Client
	limiter *rate.Limiter
	token   string
	now     func() time.Time

	// BaseURL exists to point the client at test servers.
	BaseURL string
}

func NewClient(token string) *Client {
	return &Client{
		api:     &http.Client{Timeout: apiRequestTimeout}, //nolint:exhaustruct
		media:   &http.Client{},                           //nolint:exhaustruct
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		token:   token,
		now:     time.Now,
		BaseURL: DefaultBaseURL,
	}
}

func (c *Client) newRequest(ctx context.Context, reqURL string, signed bool) *http.Request {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	must.NilErr(err)

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Authorization", "OAuth "+c.token)
	if signed {
		req.Header.Set(clientHeaderName, UserAgent)
	}

	return req
}

func (c *Client) getJSON(ctx context.Context, reqURL string, signed bool) (b []byte, err error) {
	if err := c.limiter.Wait(ctx); nil != err {
		return nil, err
	}

	resp, err := c.api.Do(c.newRequest(ctx, reqURL, signed))
	if nil != err {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, context.DeadlineExceeded
		}

		if errors.Is(err, context.Canceled) {
			return nil, context.Canceled
		}

		return nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close response body: %v", closeErr))
		}
	}()

	switch code := resp.StatusCode; code {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		return nil, httputil.NewStatusError(resp)
	}

	respBytes, err := httputil.ReadResponseBody(resp)
	if nil != err {
		return nil, err
	}

	return respBytes, nil
}

// HasPlus reports whether the account behind the token carries an active
// Plus subscription. Most media endpoints silently degrade without one.
func (c *Client) HasPlus(ctx context.Context) (bool, error) {
	respBytes, err := c.getJSON(ctx, c.BaseURL+"/account/about", false)
	if nil != err {
		return false, fmt.Errorf("failed to get account info: %w", err)
	}

	var respBody struct {
		Result struct {
			HasPlus bool `json:"hasPlus"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBytes, &respBody); nil != err {
		return false, fmt.Errorf("failed to decode account info 200 response body: %v", err)
	}

	return respBody.Result.HasPlus, nil
}

func (c *Client) AlbumMeta(ctx context.Context, albumID string) (*types.AlbumMeta, error) {
	respBytes, err := c.getJSON(ctx, c.BaseURL+"/albums/"+albumID+"/with-tracks", false)
	if nil != err {
		return nil, fmt.Errorf("failed to get album meta: %w", err)
	}

	var respBody struct {
		Result types.AlbumMeta `json:"result"`
	}
	if err := json.Unmarshal(respBytes, &respBody); nil != err {
		return nil, fmt.Errorf("failed to decode album meta 200 response body: %v", err)
	}

	return &respBody.Result, nil
}

func (c *Client) PlaylistMeta(ctx context.Context, playlistUUID string) (*types.PlaylistMeta, error) {
	respBytes, err := c.getJSON(ctx, c.BaseURL+"/playlists/"+playlistUUID, false)
	if nil != err {
		return nil, fmt.Errorf("failed to get playlist meta: %w", err)
	}

	var respBody struct {
		Result types.PlaylistMeta `json:"result"`
	}
	if err := json.Unmarshal(respBytes, &respBody); nil != err {
		return nil, fmt.Errorf("failed to decode playlist meta 200 response body: %v", err)
	}

	return &respBody.Result, nil
}

// UserPlaylistUUID resolves a numeric playlist kind from the web URL to
// the playlist UUID the API addresses playlists by. The tabs payload is
// loosely typed, hence the gjson probing.
func (c *Client) UserPlaylistUUID(ctx context.Context, kind string) (string, error) {
	respBytes, err := c.getJSON(ctx, c.BaseURL+"/landing/tabs/playlists", false)
	if nil != err {
		return "", fmt.Errorf("failed to get user playlists meta: %w", err)
	}

	if !gjson.ValidBytes(respBytes) {
		return "", errors.New("invalid user playlists 200 response json")
	}

	var playlistUUID string
	gjson.GetBytes(respBytes, "result.tabs").ForEach(func(_, tab gjson.Result) bool {
		if tab.Get("type").Str != "created_playlist_tab" {
			return true
		}
		tab.Get("items").ForEach(func(_, item gjson.Result) bool {
			if item.Get("type").Str != "liked_playlist_item" {
				return true
			}
			if playlist := item.Get("data.playlist"); playlist.Get("kind").String() == kind {
				playlistUUID = playlist.Get("playlistUuid").Str
				return false
			}

			return true
		})

		return playlistUUID == ""
	})
	if playlistUUID == "" {
		return "", ErrPlaylistNotFound
	}

	return playlistUUID, nil
}

// FileInfo performs the signed file-info request for a track at the given
// quality tier and returns the download URL, codec identifier, bitrate,
// and decryption key (empty for plain codec variants).
func (c *Client) FileInfo(ctx context.Context, trackID, quality string) (*types.DownloadInfo, error) {
	reqURL, err := url.Parse(c.BaseURL + "/get-file-info")
	must.NilErr(err)

	ts := strconv.FormatInt(c.now().Unix(), 10)

	reqParams := make(url.Values, 6)
	reqParams.Add("ts", ts)
	reqParams.Add("trackId", trackID)
	reqParams.Add("quality", quality)
	reqParams.Add("codecs", sign.Codecs)
	reqParams.Add("transports", sign.Transports)
	reqParams.Add("sign", sign.FileInfo(ts, trackID, quality))
	reqURL.RawQuery = reqParams.Encode()

	respBytes, err := c.getJSON(ctx, reqURL.String(), true)
	if nil != err {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	var respBody struct {
		Result struct {
			DownloadInfo types.DownloadInfo `json:"downloadInfo"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBytes, &respBody); nil != err {
		return nil, fmt.Errorf("failed to decode file info 200 response body: %v", err)
	}

	return &respBody.Result.DownloadInfo, nil
}

// LyricsMeta performs the signed lyrics request, asking for the timed LRC
// format. Returns ErrNoLyrics when the API has none for the track.
func (c *Client) LyricsMeta(ctx context.Context, trackID string) (l *types.LyricsMeta, err error) {
	reqURL, err := url.Parse(c.BaseURL + "/tracks/" + trackID + "/lyrics")
	must.NilErr(err)

	ts := strconv.FormatInt(c.now().Unix(), 10)

	reqParams := make(url.Values, 4)
	reqParams.Add("timeStamp", ts)
	reqParams.Add("trackId", trackID)
	reqParams.Add("format", "LRC")
	reqParams.Add("sign", sign.Lyrics(ts, trackID))
	reqURL.RawQuery = reqParams.Encode()

	if err := c.limiter.Wait(ctx); nil != err {
		return nil, err
	}

	resp, err := c.api.Do(c.newRequest(ctx, reqURL.String(), true))
	if nil != err {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, context.DeadlineExceeded
		}

		if errors.Is(err, context.Canceled) {
			return nil, context.Canceled
		}

		return nil, fmt.Errorf("failed to send get lyrics request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close get lyrics response body: %v", closeErr))
		}
	}()

	switch code := resp.StatusCode; code {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNoLyrics
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		return nil, httputil.NewStatusError(resp)
	}

	respBytes, err := httputil.ReadResponseBody(resp)
	if nil != err {
		return nil, err
	}

	var respBody struct {
		Result types.LyricsMeta `json:"result"`
	}
	if err := json.Unmarshal(respBytes, &respBody); nil != err {
		return nil, fmt.Errorf("failed to decode lyrics 200 response body: %v", err)
	}

	return &respBody.Result, nil
}

// FetchBytes downloads a full small payload (cover image, lyrics text)
// from an absolute URL outside the API base.
func (c *Client) FetchBytes(ctx context.Context, fileURL string) (b []byte, err error) {
	resp, err := c.media.Do(c.newRequest(ctx, fileURL, false))
	if nil != err {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, context.DeadlineExceeded
		}

		if errors.Is(err, context.Canceled) {
			return nil, context.Canceled
		}

		return nil, fmt.Errorf("failed to send file request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close file response body: %v", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, httputil.NewStatusError(resp)
	}

	respBytes, err := httputil.ReadResponseBody(resp)
	if nil != err {
		return nil, err
	}

	return respBytes, nil
}

// CoverURL resolves the scheme-relative "host/path/%%" cover URI shape
// the API returns, where %% is the size placeholder.
func CoverURL(coverURI string, original bool) string {
	size := "/1000x1000"
	if original {
		size = "/orig"
	}

	return "https://" + strings.Replace(coverURI, "/%%", size, 1)
}

func (c *Client) Cover(ctx context.Context, coverURI string, original bool) ([]byte, error) {
	b, err := c.FetchBytes(ctx, CoverURL(coverURI, original))
	if nil != err {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}

	return b, nil
}

func (c *Client) LyricsText(ctx context.Context, downloadURL string) (string, error) {
	b, err := c.FetchBytes(ctx, downloadURL)
	if nil != err {
		return "", fmt.Errorf("failed to download lyrics text: %w", err)
	}

	return string(b), nil
}

// OpenMedia starts a ranged media download. The returned reader streams
// the track payload; the declared content length is always known, a
// response without one is rejected.
func (c *Client) OpenMedia(ctx context.Context, mediaURL string) (body io.ReadCloser, length int64, err error) {
	req := c.newRequest(ctx, mediaURL, false)
	req.Header.Set("Range", "bytes=0-")

	resp, err := c.media.Do(req)
	if nil != err {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, context.DeadlineExceeded
		}

		if errors.Is(err, context.Canceled) {
			return nil, 0, context.Canceled
		}

		return nil, 0, fmt.Errorf("failed to send media request: %v", err)
	}

	switch code := resp.StatusCode; code {
	case http.StatusOK, http.StatusPartialContent:
	default:
		statusErr := httputil.NewStatusError(resp)
		if closeErr := resp.Body.Close(); nil != closeErr {
			return nil, 0, errors.Join(statusErr, fmt.Errorf("failed to close media response body: %v", closeErr))
		}

		return nil, 0, statusErr
	}

	if resp.ContentLength < 0 {
		if closeErr := resp.Body.Close(); nil != closeErr {
			return nil, 0, fmt.Errorf("failed to close media response body: %v", closeErr)
		}

		return nil, 0, errors.New("media response is missing content length")
	}

	return resp.Body, resp.ContentLength, nil
}
