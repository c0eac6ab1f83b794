package lazada

import "golang.org/x/oauth2"

// DefaultAuthURL is the seller consent page.
const DefaultAuthURL = "https://auth.lazada.com/oauth/authorize"

// Authorizer builds the consent redirect for the authorization-code grant.
type Authorizer struct {
	conf *oauth2.Config
}

func NewAuthorizer(authURL, appKey, callbackURI string) *Authorizer {
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	return &Authorizer{
		conf: &oauth2.Config{
			ClientID:    appKey,
			RedirectURL: callbackURI,
			Endpoint: oauth2.Endpoint{
				AuthURL: authURL,
			},
		},
	}
}

// URL returns the consent URL. force_auth makes the provider ask the seller to
// log in again even with a live session.
func (a *Authorizer) URL() string {
	return a.conf.AuthCodeURL("", oauth2.SetAuthURLParam("force_auth", "true"))
}
