package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/common"
	"github.com/pinkslip-racing/pinkslip/internal/constants"
	"github.com/pinkslip-racing/pinkslip/internal/metrics"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	defaultHelixURL = "https://api.twitch.tv/helix"
	defaultTokenURL = "https://id.twitch.tv/oauth2/token"

	// app tokens are refreshed this long before Twitch expires them
	tokenExpiryMargin = 5 * time.Minute
	userIDCacheTTL    = 24 * time.Hour
)

// TwitchConfig holds the app credentials and endpoints. BaseURL and
// TokenURL default to the public Twitch hosts.
type TwitchConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
}

// TwitchProvider implements StreamProvider against the Helix API using an
// app access token from the client credentials flow.
type TwitchProvider struct {
	BaseURL  string
	ClientID string
	Client   *http.Client

	limiter *rate.Limiter
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
}

var _ StreamProvider = (*TwitchProvider)(nil)

// NewTwitchProvider creates a Helix client. cache may be nil, in which case
// login lookups are not memoised.
func NewTwitchProvider(ctx context.Context, cfg TwitchConfig, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *TwitchProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultHelixURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ts := oauth2.ReuseTokenSourceWithExpiry(nil, cc.TokenSource(ctx), tokenExpiryMargin)

	client := oauth2.NewClient(ctx, ts)
	client.Timeout = 10 * time.Second

	return &TwitchProvider{
		BaseURL:  baseURL,
		ClientID: cfg.ClientID,
		Client:   client,
		// Helix allows 800 points a minute per app
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		cache:   cache,
		metrics: metricsReg,
	}
}

// GetProviderType returns the provider type identifier
func (p *TwitchProvider) GetProviderType() string {
	return "twitch_helix"
}

// ResolveUserID returns the Helix user id for login, consulting the cache
// first. A missing user is reported with ErrCodeResourceNotFound.
func (p *TwitchProvider) ResolveUserID(ctx context.Context, login string) (string, error) {
	pattern := string(constants.CachePrefixTwitchUser)
	key := pattern + login

	if p.cache != nil {
		if id, ok := p.cache.Get(key); ok {
			p.metrics.ObserveCache(pattern, true)
			return id, nil
		}
		p.metrics.ObserveCache(pattern, false)
	}

	user, err := p.GetUserByLogin(ctx, login)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeResourceNotFound,
			Message: fmt.Sprintf("Twitch user %q not found", login),
		}
	}

	if p.cache != nil {
		p.cache.Set(key, user.ID, userIDCacheTTL)
	}
	return user.ID, nil
}

// GetUserByLogin fetches a profile by login name
func (p *TwitchProvider) GetUserByLogin(ctx context.Context, login string) (*StreamUser, error) {
	if login == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "login cannot be empty",
		}
	}
	return p.getUser(ctx, url.Values{"login": {login}})
}

// GetUserByID fetches a profile by Helix user id
func (p *TwitchProvider) GetUserByID(ctx context.Context, userID string) (*StreamUser, error) {
	if userID == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "user id cannot be empty",
		}
	}
	return p.getUser(ctx, url.Values{"id": {userID}})
}

func (p *TwitchProvider) getUser(ctx context.Context, query url.Values) (*StreamUser, error) {
	var body struct {
		Data []StreamUser `json:"data"`
	}
	if _, err := p.doGET(ctx, "/users", query, &body); err != nil {
		return nil, err
	}
	if len(body.Data) == 0 {
		return nil, nil
	}
	return &body.Data[0], nil
}

// GetStream returns the live stream of userID, or nil when offline
func (p *TwitchProvider) GetStream(ctx context.Context, userID string) (*Stream, error) {
	if userID == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "user id cannot be empty",
		}
	}

	var body struct {
		Data []Stream `json:"data"`
	}
	if _, err := p.doGET(ctx, "/streams", url.Values{"user_id": {userID}}, &body); err != nil {
		return nil, err
	}
	if len(body.Data) == 0 {
		return nil, nil
	}
	return &body.Data[0], nil
}

// doGET performs a rate limited, authenticated Helix GET
func (p *TwitchProvider) doGET(ctx context.Context, endpoint string, query url.Values, result interface{}) (int, error) {
	if p.ClientID == "" {
		return 0, &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: "TWITCH_CLIENT_ID is not set",
		}
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Err:     err,
		}
	}

	reqURL := p.BaseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	// Authorization is added by the oauth2 transport
	req.Header.Set("Client-Id", p.ClientID)
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		p.metrics.ObserveTwitchError(endpoint)
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return 0, &ProviderError{
				Code:    constants.ErrCodeAuthenticationFailed,
				Message: constants.GetErrorMessage(constants.ErrCodeAuthenticationFailed),
				Err:     err,
			}
		}
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.metrics.ObserveTwitchError(endpoint)
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, buildHTTPError(resp.StatusCode, endpoint, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to decode response",
			Err:     err,
		}
	}
	return resp.StatusCode, nil
}

// buildHTTPError creates appropriate error based on status code
func buildHTTPError(statusCode int, endpoint string, body string) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: fmt.Sprintf("Authentication failed for endpoint %s", endpoint),
			Details: body,
		}
	case http.StatusNotFound:
		return &ProviderError{
			Code:    constants.ErrCodeResourceNotFound,
			Message: fmt.Sprintf("Resource not found: %s", endpoint),
			Details: body,
		}
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: body,
		}
	case http.StatusBadRequest:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: fmt.Sprintf("Bad request to %s", endpoint),
			Details: body,
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d from %s", statusCode, endpoint),
			Details: body,
		}
	}
}
