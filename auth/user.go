package auth

import (
	"errors"
	"strings"
	"time"
)

// User is an account row. The password hash never leaves the server.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the body of login and register requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var (
	errEmptyCredentials = errors.New("username and password are required")
	errWeakPassword     = errors.New("password must be at least 8 characters")
)

func (c Credentials) check() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return errEmptyCredentials
	}
	return nil
}

func (c Credentials) checkForRegister() error {
	if err := c.check(); err != nil {
		return err
	}
	if len(c.Password) < 8 {
		return errWeakPassword
	}
	return nil
}
