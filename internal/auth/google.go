package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	sharedauth "taxprep-backend/internal/shared/auth"
	"taxprep-backend/internal/shared/server/respond"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleService implements the Google sign-in flow. A successful callback
// issues an application JWT and redirects back to the UI with it.
type GoogleService struct {
	oauthConfig *oauth2.Config
	uiRedirect  string
	states      *stateCache
}

// NewGoogleService builds a GoogleService from OAuth client credentials.
func NewGoogleService(clientID, clientSecret, redirectURL, uiRedirect string) *GoogleService {
	return &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect: uiRedirect,
		states:     newStateCache(5 * time.Minute),
	}
}

// RegisterRoutes attaches the Google auth routes.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) start(c *gin.Context) {
	if s.oauthConfig.ClientID == "" || s.oauthConfig.ClientSecret == "" || s.oauthConfig.RedirectURL == "" {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}

	state := uuid.NewString()
	s.states.issue(state)
	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

func (s *GoogleService) callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}
	if !s.states.redeem(state) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	account, err := s.fetchAccount(ctx, token)
	if err != nil || account.Sub == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}

	jwt, err := sharedauth.SignJWT(sharedauth.Claims{
		Sub:   "google:" + account.Sub,
		Email: account.Email,
		Name:  account.Name,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	redirectURL, err := appendToken(s.uiRedirect, jwt)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}
	c.Redirect(http.StatusFound, redirectURL)
}

type googleAccount struct {
	Sub   string `json:"sub"`
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *GoogleService) fetchAccount(ctx context.Context, token *oauth2.Token) (googleAccount, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return googleAccount{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleAccount{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var account googleAccount
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return googleAccount{}, err
	}
	// Some responses use "id" instead of "sub".
	if account.Sub == "" {
		account.Sub = account.ID
	}
	return account, nil
}

// stateCache tracks outstanding OAuth states. A state is single-use and
// expires after the configured TTL.
type stateCache struct {
	ttl   time.Duration
	mu    sync.Mutex
	items map[string]time.Time
}

func newStateCache(ttl time.Duration) *stateCache {
	return &stateCache{ttl: ttl, items: make(map[string]time.Time)}
}

func (s *stateCache) issue(state string) {
	s.mu.Lock()
	s.items[state] = time.Now().Add(s.ttl)
	s.mu.Unlock()
}

func (s *stateCache) redeem(state string) bool {
	s.mu.Lock()
	exp, ok := s.items[state]
	delete(s.items, state)
	s.mu.Unlock()
	return ok && time.Now().Before(exp)
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
