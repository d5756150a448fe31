package gauth

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

/*
Options locates the OAuth client secret and the cached user token.
*/
type Options struct {
	CredentialsPath string
	TokenPath       string
	Scopes          []string
}

/*
Client returns an authorized HTTP client for the Google APIs.

It loads the client secret, then the cached token. A valid or refreshable
token is used directly (and the refreshed token is written back). Without a
usable token it runs the console consent flow: print the auth URL, read the
verification code from stdin, exchange and cache. Failure here aborts the
whole run before any data access; the message tells the operator to delete
the token file and re-authorize when refresh is impossible.
*/
func Client(ctx context.Context, options Options) (client *http.Client, e *xerr.Error) {
	secretBytes, readErr := os.ReadFile(options.CredentialsPath)
	if readErr != nil {
		e = xerr.NewError(readErr, "read OAuth client secret", options.CredentialsPath)
		return nil, e
	}

	oauthConfig, parseErr := google.ConfigFromJSON(secretBytes, options.Scopes...)
	if parseErr != nil {
		e = xerr.NewError(parseErr, "parse OAuth client secret", options.CredentialsPath)
		return nil, e
	}

	token, tokenErr := tokenFromFile(options.TokenPath)
	if tokenErr == nil && (token.Valid() || token.RefreshToken != "") {
		refreshed, refreshErr := oauthConfig.TokenSource(ctx, token).Token()
		if refreshErr != nil {
			hint := fmt.Sprintf("token refresh failed; delete '%s' and run again to re-authorize", options.TokenPath)
			e = xerr.NewError(refreshErr, "refresh OAuth token", hint)
			return nil, e
		}
		if refreshed.AccessToken != token.AccessToken {
			saveToken(options.TokenPath, refreshed)
		}
		return oauthConfig.Client(ctx, refreshed), e
	}

	token, e = tokenFromConsent(ctx, oauthConfig)
	if e != nil {
		return nil, e
	}
	saveToken(options.TokenPath, token)

	return oauthConfig.Client(ctx, token), e
}

func tokenFromFile(tokenPath string) (*oauth2.Token, error) {
	tokenBytes, readErr := os.ReadFile(tokenPath)
	if readErr != nil {
		return nil, readErr
	}

	token := &oauth2.Token{}
	unmarshalErr := json.Unmarshal(tokenBytes, token)
	if unmarshalErr != nil {
		return nil, unmarshalErr
	}
	return token, nil
}

func tokenFromConsent(ctx context.Context, oauthConfig *oauth2.Config) (token *oauth2.Token, e *xerr.Error) {
	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	tl.Log(tl.Notice, palette.BlueBold, "%s\n%s", "Open this URL in a browser and authorize:", authURL)
	tl.Log(tl.Notice, palette.Blue, "Paste the verification code here and press enter:")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		e = xerr.NewError(fmt.Errorf("stdin closed"), "read verification code", nil)
		return nil, e
	}
	code := strings.TrimSpace(scanner.Text())

	token, exchangeErr := oauthConfig.Exchange(ctx, code)
	if exchangeErr != nil {
		e = xerr.NewError(exchangeErr, "exchange verification code", nil)
		return nil, e
	}
	return token, e
}

func saveToken(tokenPath string, token *oauth2.Token) {
	tokenBytes, marshalErr := json.Marshal(token)
	if marshalErr != nil {
		tl.Log(tl.Warning, palette.YellowBold, "Unable to serialize token: '%s'", marshalErr)
		return
	}

	writeErr := os.WriteFile(tokenPath, tokenBytes, 0600)
	if writeErr != nil {
		tl.Log(tl.Warning, palette.YellowBold, "Unable to cache token at '%s': '%s'", tokenPath, writeErr)
		return
	}
	tl.Log(tl.Info1, palette.Green, "Token cached at '%s'", tokenPath)
}
