package google

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/meetcal/meetcal/internal/config"
	"github.com/meetcal/meetcal/internal/rest"
	"github.com/meetcal/meetcal/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

type googleAuthRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

type GoogleAuth struct {
	tokens      TokenRepository
	oauthConfig *oauth2.Config
}

func NewGoogleAuth(tokens TokenRepository, cfg config.Application) *GoogleAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/integrations/google/auth/callback",
		Scopes:       []string{calendar.CalendarReadonlyScope},
	}

	return &GoogleAuth{tokens: tokens, oauthConfig: oauthConfig}
}

// OAuthLogin godoc
// @Summary Start Google Calendar authorization
// @Tags Integrations
// @Produce json
// @Param finalUrl query string false "Where to return after the callback"
// @Success 200 {object} googleAuthRedirect
// @Router /api/integrations/google/auth/login [get]
// @Security XUserId
func (g *GoogleAuth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	userId, err := user.CurrentId(r.Context())
	if err != nil {
		log.Error("unable to retrieve current user: ", err)
		http.Error(w, "unable to retrieve current user", http.StatusForbidden)
		return
	}

	stateNonce := uuid.New().String()
	finalUrl := r.URL.Query().Get("finalUrl")
	if err := g.tokens.BeginAuth(r.Context(), userId, stateNonce); err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to handle Google authentication", "")
		return
	}

	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	u := g.oauthConfig.AuthCodeURL(finalUrl+"|"+stateNonce, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	rest.WriteJSON(w, http.StatusOK, googleAuthRedirect{RedirectUrl: u})
}

// OAuthCallback godoc
// @Summary Receive the Google authorization code
// @Tags Integrations
// @Param code query string true "Authorization code"
// @Param state query string true "State created by the login endpoint"
// @Success 302
// @Router /api/integrations/google/auth/callback [get]
func (g *GoogleAuth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	finalUrl, nonce, ok := strings.Cut(state, "|")
	if !ok || nonce == "" {
		rest.WriteError(w, http.StatusBadRequest, "Invalid authentication state", "")
		return
	}

	token, err := g.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		http.Redirect(w, r, withSuccess(finalUrl, false), http.StatusFound)
		return
	}

	if err := g.tokens.CompleteAuth(r.Context(), nonce, token); err != nil {
		log.Errorf("unable to complete Google authentication: %v", err)
		http.Redirect(w, r, withSuccess(finalUrl, false), http.StatusFound)
		return
	}
	log.Debug("Successfully stored Google auth token for nonce: ", nonce)
	http.Redirect(w, r, withSuccess(finalUrl, true), http.StatusFound)
}

// OAuthLogout godoc
// @Summary Disconnect Google Calendar
// @Tags Integrations
// @Success 204
// @Router /api/integrations/google/auth/logout [delete]
// @Security XUserId
func (g *GoogleAuth) OAuthLogout(w http.ResponseWriter, r *http.Request) {
	userId, err := user.CurrentId(r.Context())
	if err != nil {
		log.Error("unable to retrieve current user: ", err)
		http.Error(w, "unable to retrieve current user", http.StatusForbidden)
		return
	}
	if err := g.tokens.DeleteToken(r.Context(), userId); err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to handle Google authentication", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getClient returns nil when the user has not connected Google Calendar.
func (g *GoogleAuth) getClient(ctx context.Context, userId int) (*http.Client, error) {
	token, err := g.tokens.GetToken(ctx, userId)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if token == nil {
		return nil, nil
	}
	return g.oauthConfig.Client(context.Background(), token), nil
}

func withSuccess(finalUrl string, success bool) string {
	if finalUrl == "" {
		finalUrl = "/"
	}
	value := "false"
	if success {
		value = "true"
	}
	parsed, err := url.Parse(finalUrl)
	if err != nil {
		return "/?success=" + value
	}
	query := parsed.Query()
	query.Set("success", value)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
