package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/rs-cli/internal/config"
	"github.com/openkcm/rs-cli/internal/testutils"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should load config", func(t *testing.T) {
		dir := t.TempDir()
		testutils.WriteConfigFile(t, dir, testutils.ReportServerConfig("http://localhost/reportserver"))

		cfg, err := config.LoadConfig(
			commoncfg.WithPaths(dir),
		)
		require.NoError(t, err)

		uri, err := commoncfg.LoadValueFromSourceRef(cfg.ReportServer.URI)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost/reportserver", string(uri))
		assert.Equal(t, commoncfg.BasicSecretType, cfg.ReportServer.Auth.Type)
	})

	t.Run("Should fail on invalid report server auth", func(t *testing.T) {
		dir := t.TempDir()
		rs := testutils.ReportServerConfig("http://localhost/reportserver")
		rs.Auth.Type = commoncfg.OAuth2SecretType
		testutils.WriteConfigFile(t, dir, rs)

		_, err := config.LoadConfig(
			commoncfg.WithPaths(dir),
		)
		assert.ErrorIs(t, err, config.ErrUnsupportedSecretType)
	})

	t.Run("Should fail on malformed config", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("reportServer: ["), 0o600)
		require.NoError(t, err)

		_, err = config.LoadConfig(
			commoncfg.WithPaths(dir),
		)
		assert.Error(t, err)
	})

	t.Run("Should default to insecure auth when only the uri is set", func(t *testing.T) {
		dir := t.TempDir()
		content := "reportServer:\n" +
			"  uri:\n" +
			"    source: embedded\n" +
			"    value: http://localhost/reportserver\n"
		err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600)
		require.NoError(t, err)

		cfg, err := config.LoadConfig(
			commoncfg.WithPaths(dir),
		)
		require.NoError(t, err)
		assert.Equal(t, commoncfg.InsecureSecretType, cfg.ReportServer.Auth.Type)
	})
}
