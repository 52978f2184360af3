package prefs

import "net/http"

// CookieStorage keeps each key in its own cookie.
type CookieStorage struct {
	w       http.ResponseWriter
	r       *http.Request
	written map[string]string
}

// NewCookieStorage reads from r and writes Set-Cookie headers to w.
func NewCookieStorage(w http.ResponseWriter, r *http.Request) *CookieStorage {
	return &CookieStorage{w: w, r: r, written: map[string]string{}}
}

// Get returns a value set earlier in this request, else the request cookie.
func (s *CookieStorage) Get(key string) (string, bool, error) {
	if v, ok := s.written[key]; ok {
		return v, true, nil
	}
	c, err := s.r.Cookie(key)
	if err != nil {
		return "", false, nil
	}
	return c.Value, true, nil
}

func (s *CookieStorage) Set(key, value string) error {
	http.SetCookie(s.w, newCookie(s.r, key, value))
	s.written[key] = value
	return nil
}
