package cart

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const CookieName = "cart_session"

// CookieStore moves signed sessions in and out of the cart cookie.
type CookieStore struct {
	signer *Signer
	secure bool
}

func NewCookieStore(signer *Signer, secure bool) *CookieStore {
	return &CookieStore{signer: signer, secure: secure}
}

func (c *CookieStore) Signer() *Signer {
	return c.signer
}

// Load returns the verified session from r, or nil when there is none.
// A cookie that fails verification is deleted and reported as no cart,
// together with the reason.
func (c *CookieStore) Load(w http.ResponseWriter, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session, err := Decode(cookie.Value)
	if err == nil {
		err = c.signer.Validate(session)
	}
	if err != nil {
		c.Clear(w)
		return nil, err
	}
	return &session, nil
}

func (c *CookieStore) Save(w http.ResponseWriter, session Session) error {
	value, err := Encode(session)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.signer.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func Encode(session Session) (string, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("marshal cart session: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func Decode(value string) (Session, error) {
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Session{}, ErrMalformed
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, ErrMalformed
	}
	return session, nil
}
