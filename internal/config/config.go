package config

import (
	"errors"
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/openkcm/rs-cli/internal/errs"
)

var (
	ErrConfigurationValuesError = errors.New("configuration value error")
	ErrUnsupportedSecretType    = errors.New("only insecure, basic or mtls secrets are supported for the report server")
	ErrNTLMRequiresBasic        = errors.New("ntlm authentication requires basic credentials")
	ErrNegativeTimeout          = errors.New("timeout must not be negative")
)

const DefaultTimeout = 100 * time.Second

// Config holds all application configuration parameters
type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash"`

	ReportServer ReportServer `yaml:"reportServer"`
}

func (c *Config) Validate() error {
	err := c.ReportServer.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	return nil
}

// ReportServer holds the connection settings of the SSRS web service
type ReportServer struct {
	// URI of the report server, e.g. http://localhost/reportserver
	URI commoncfg.SourceRef `yaml:"uri"`

	// Auth selects the credentials sent with every SOAP call
	Auth commoncfg.SecretRef `yaml:"auth"`

	// NTLM negotiates Windows authentication using the basic credentials
	NTLM bool `yaml:"ntlm"`

	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Validate checks the ReportServer configuration values
func (r *ReportServer) Validate() error {
	switch r.Auth.Type {
	case commoncfg.InsecureSecretType, commoncfg.MTLSSecretType:
		if r.NTLM {
			return ErrNTLMRequiresBasic
		}
	case commoncfg.BasicSecretType:
	default:
		return ErrUnsupportedSecretType
	}

	if r.Timeout < 0 {
		return ErrNegativeTimeout
	}

	return nil
}

// EffectiveTimeout returns the configured timeout or the SSRS client default
func (r *ReportServer) EffectiveTimeout() time.Duration {
	if r.Timeout == 0 {
		return DefaultTimeout
	}

	return r.Timeout
}
