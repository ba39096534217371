package config

import (
	"fmt"
	"strings"
)

type Relay struct {
	Port               string `env:"PORT"                       envDefault:"4000"`
	TargetOrigin       string `env:"RELAY_TARGET_ORIGIN"        envDefault:"https://sdhsafterproject2025-production.up.railway.app"`
	SpoofOrigin        string `env:"RELAY_SPOOF_ORIGIN"         envDefault:"http://localhost:3000"`
	ProxyPrefix        string `env:"RELAY_PROXY_PREFIX"         envDefault:"/api"`
	InsecureSkipVerify bool   `env:"RELAY_INSECURE_SKIP_VERIFY" envDefault:"false"`
}

var _ RelayConfig = Relay{}

func (r *Relay) sanitize() {
	r.TargetOrigin = strings.TrimRight(r.TargetOrigin, "/")
	r.SpoofOrigin = strings.TrimRight(r.SpoofOrigin, "/")
	if !strings.HasPrefix(r.ProxyPrefix, "/") {
		r.ProxyPrefix = "/" + r.ProxyPrefix
	}
	r.ProxyPrefix = strings.TrimRight(r.ProxyPrefix, "/")
}

func (r Relay) GetPort() string {
	port := r.Port
	if port == "" {
		port = "4000"
	}
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (r Relay) GetTargetOrigin() string {
	return r.TargetOrigin
}

// GetSpoofOrigin is the Origin header value the backend's CORS allow-list accepts.
func (r Relay) GetSpoofOrigin() string {
	return r.SpoofOrigin
}

func (r Relay) GetSpoofReferer() string {
	return r.SpoofOrigin + "/"
}

func (r Relay) GetProxyPrefix() string {
	return r.ProxyPrefix
}

func (r Relay) GetInsecureSkipVerify() bool {
	return r.InsecureSkipVerify
}
