package theme

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// SessionStorage stores preferences in the visitor's session cookie.
// It requires session.Middleware on the request.
type SessionStorage struct {
	c echo.Context
}

// NewSessionStorage returns a Storage for the request behind c.
func NewSessionStorage(c echo.Context) *SessionStorage {
	return &SessionStorage{c: c}
}

func (s *SessionStorage) Get(key string) (string, bool) {
	sess, err := session.Get(StorageKey, s.c)
	if err != nil {
		return "", false
	}
	v, ok := sess.Values[key].(string)
	return v, ok
}

func (s *SessionStorage) Set(key, value string) error {
	sess, err := session.Get(StorageKey, s.c)
	if err != nil {
		return err
	}
	sess.Values[key] = value
	return sess.Save(s.c.Request(), s.c.Response())
}
