package services

import (
	"errors"

	"github.com/brookxc/menuadmin/config"
	"github.com/brookxc/menuadmin/pkg/auth"
)

// ErrInvalidCredentials is returned for any failed login attempt; the
// caller cannot tell an unknown username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// operatorID is the fixed identity carried by every session token. There
// is one shared login, not per-tenant users.
const operatorID = "1"

// AuthService checks the two configured operator credential pairs and
// mints session tokens. Passwords are bcrypt-hashed at construction so the
// plaintext from config is not kept around.
type AuthService struct {
	hashes    map[string]string // username → bcrypt hash
	dummyHash string            // compared against for unknown usernames
}

func NewAuthService() (*AuthService, error) {
	hashes := make(map[string]string)
	for user, pass := range config.OperatorCredentials() {
		h, err := auth.HashPassword(pass)
		if err != nil {
			return nil, err
		}
		hashes[user] = h
	}

	dummy, err := auth.HashPassword("unused-timing-equalizer")
	if err != nil {
		return nil, err
	}

	return &AuthService{hashes: hashes, dummyHash: dummy}, nil
}

// Login validates a credential pair and returns a signed session token.
// Unknown usernames still burn a bcrypt comparison so response timing does
// not reveal which usernames exist.
func (s *AuthService) Login(username, password string) (string, error) {
	hash, ok := s.hashes[username]
	if !ok {
		auth.CheckPassword(s.dummyHash, password)
		return "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(hash, password) {
		return "", ErrInvalidCredentials
	}

	return auth.GenerateToken(operatorID, username)
}
