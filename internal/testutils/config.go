package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/openkcm/rs-cli/internal/config"
)

const (
	TestUsername = "CONTOSO\\svc-reports"
	TestPassword = "P@ssw0rd"
)

func embedded(value string) commoncfg.SourceRef {
	return commoncfg.SourceRef{
		Source: commoncfg.EmbeddedSourceValue,
		Value:  value,
	}
}

// ReportServerConfig returns a valid report server section using basic auth
func ReportServerConfig(uri string) config.ReportServer {
	return config.ReportServer{
		URI: embedded(uri),
		Auth: commoncfg.SecretRef{
			Type: commoncfg.BasicSecretType,
			Basic: commoncfg.BasicAuth{
				Username: embedded(TestUsername),
				Password: embedded(TestPassword),
			},
		},
	}
}

// WriteConfigFile writes config.yaml into dir with the given report server section
func WriteConfigFile(t *testing.T, dir string, rs config.ReportServer) {
	t.Helper()

	content := map[string]any{
		"application": map[string]string{
			"name": "rs-cli-test",
		},
		"logger": map[string]string{
			"level":  "info",
			"format": "json",
		},
		"reportServer": rs,
	}

	bytes, err := yaml.Marshal(content)
	require.NoError(t, err)

	err = os.WriteFile(filepath.Join(dir, "config.yaml"), bytes, 0o600)
	require.NoError(t, err)
}
