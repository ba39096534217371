package config

import (
	"strings"
	"time"
)

type Client struct {
	LocalRelayOrigin string        `env:"CLIENT_LOCAL_RELAY_ORIGIN" envDefault:"http://localhost:4000"`
	BackendOrigin    string        `env:"CLIENT_BACKEND_ORIGIN"     envDefault:"https://sdhsafterproject2025-production.up.railway.app"`
	LoopbackHosts    []string      `env:"CLIENT_LOOPBACK_HOSTS"     envDefault:"localhost,127.0.0.1" envSeparator:","`
	TokenKey         string        `env:"CLIENT_TOKEN_KEY"          envDefault:"afterschool.authToken"`
	UserKey          string        `env:"CLIENT_USER_KEY"           envDefault:"afterschool.currentUser"`
	RequestTimeout   time.Duration `env:"CLIENT_REQUEST_TIMEOUT"    envDefault:"30s"`
	VerificationTTL  time.Duration `env:"CLIENT_VERIFICATION_TTL"   envDefault:"180s"`
}

var _ ClientConfig = Client{}

func (c *Client) sanitize() {
	c.LocalRelayOrigin = strings.TrimRight(c.LocalRelayOrigin, "/")
	c.BackendOrigin = strings.TrimRight(c.BackendOrigin, "/")
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.VerificationTTL <= 0 {
		c.VerificationTTL = 180 * time.Second
	}
}

func (c Client) GetLocalRelayOrigin() string {
	return c.LocalRelayOrigin
}

func (c Client) GetBackendOrigin() string {
	return c.BackendOrigin
}

func (c Client) GetLoopbackHosts() []string {
	return c.LoopbackHosts
}

func (c Client) GetTokenKey() string {
	return c.TokenKey
}

func (c Client) GetUserKey() string {
	return c.UserKey
}

func (c Client) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}

// GetVerificationTTL is how long an e-mail verification code stays usable.
func (c Client) GetVerificationTTL() time.Duration {
	return c.VerificationTTL
}
