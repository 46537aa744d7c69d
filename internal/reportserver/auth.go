package reportserver

import (
	"net/http"
	"time"

	"github.com/Azure/go-ntlmssp"
	"github.com/go-resty/resty/v2"
	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/openkcm/rs-cli/internal/config"
	"github.com/openkcm/rs-cli/internal/errs"
)

const (
	maxIdleConns          = 10
	idleConnTimeout       = 90 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	expectContinueTimeout = 1 * time.Second
)

func loadURI(cfg config.ReportServer) (string, error) {
	uri, err := commoncfg.LoadValueFromSourceRef(cfg.URI)
	if err != nil {
		return "", errs.Wrap(ErrLoadURI, err)
	}

	return string(uri), nil
}

// configureAuth applies the configured credentials and builds the transport.
// With NTLM enabled the basic credentials are not sent as such but used by the
// negotiator to answer the server's challenge.
func configureAuth(httpClient *resty.Client, cfg config.ReportServer) error {
	transport := newTransport()

	switch cfg.Auth.Type {
	case commoncfg.InsecureSecretType:
	case commoncfg.BasicSecretType:
		username, err := commoncfg.LoadValueFromSourceRef(cfg.Auth.Basic.Username)
		if err != nil {
			return errs.Wrap(ErrLoadCredentials, err)
		}

		password, err := commoncfg.LoadValueFromSourceRef(cfg.Auth.Basic.Password)
		if err != nil {
			return errs.Wrap(ErrLoadCredentials, err)
		}

		httpClient.SetBasicAuth(string(username), string(password))
	case commoncfg.MTLSSecretType:
		tlsConfig, err := commoncfg.LoadMTLSConfig(&cfg.Auth.MTLS)
		if err != nil {
			return errs.Wrap(ErrLoadMTLSConfig, err)
		}

		transport.TLSClientConfig = tlsConfig
	default:
		return ErrUnsupportedAuth
	}

	if cfg.NTLM {
		if cfg.Auth.Type != commoncfg.BasicSecretType {
			return config.ErrNTLMRequiresBasic
		}

		httpClient.SetTransport(ntlmssp.Negotiator{RoundTripper: transport})

		return nil
	}

	httpClient.SetTransport(transport)

	return nil
}

// newTransport clones the default transport so proxy and dial settings are
// kept, falling back to an equivalent one if it was replaced.
func newTransport() *http.Transport {
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		return t.Clone()
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          maxIdleConns,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ExpectContinueTimeout: expectContinueTimeout,
	}
}
