package server

import (
	"crypto/tls"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/jrsteele09/afterschool-portal/internal/errors"
)

const proxyErrorBody = "Proxy Error"

// Headers the relay owns; the backend's values are dropped so browsers see
// one answer.
var relayOwnedHeaders = []string{
	"Access-Control-Allow-Origin",
	"Access-Control-Allow-Credentials",
	"Access-Control-Allow-Methods",
	"Access-Control-Allow-Headers",
	"Access-Control-Max-Age",
}

func newProxy(cfg config.RelayConfig) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(cfg.GetTargetOrigin())
	if err != nil {
		return nil, errors.Wrapf(errors.ErrValidation, "[newProxy] target origin %q: %v", cfg.GetTargetOrigin(), err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, errors.Wrapf(errors.ErrValidation, "[newProxy] target origin %q needs a scheme and host", cfg.GetTargetOrigin())
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: cfg.GetInsecureSkipVerify()} //nolint:gosec // opt-in via RELAY_INSECURE_SKIP_VERIFY

	spoofOrigin := cfg.GetSpoofOrigin()
	spoofReferer := cfg.GetSpoofReferer()

	return &httputil.ReverseProxy{
		Transport: transport,
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.Host = target.Host
			pr.Out.Header.Set("Origin", spoofOrigin)
			pr.Out.Header.Set("Referer", spoofReferer)

			requestLogger(pr.In).Info().
				Str("method", pr.In.Method).
				Str("path", pr.In.URL.RequestURI()).
				Str("target", pr.Out.URL.String()).
				Msg("[Proxy] request")
		},
		ModifyResponse: func(resp *http.Response) error {
			for _, h := range relayOwnedHeaders {
				resp.Header.Del(h)
			}
			requestLogger(resp.Request).Info().
				Int("status", resp.StatusCode).
				Str("method", resp.Request.Method).
				Str("path", resp.Request.URL.Path).
				Msg("[Proxy] response")
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			requestLogger(r).Err(err).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("[Proxy] error")
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(proxyErrorBody))
		},
	}, nil
}
