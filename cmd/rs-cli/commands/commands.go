package commands

import (
	"log/slog"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/spf13/cobra"

	"github.com/openkcm/rs-cli/internal/config"
	"github.com/openkcm/rs-cli/internal/log"
	"github.com/openkcm/rs-cli/internal/manager"
	"github.com/openkcm/rs-cli/internal/reportserver"
)

type CommandFactory struct {
	cfg *config.Config

	// set by the persistent flags of the root command
	uri     string
	verbose bool

	rs manager.ReportServer
	cm *manager.CatalogManager
}

// NewCommandFactory connects to the configured report server on the first
// command that needs it
func NewCommandFactory(cfg *config.Config) *CommandFactory {
	return &CommandFactory{cfg: cfg}
}

// NewCommandFactoryWithReportServer uses an already established report server
// connection instead of building one from the configuration
func NewCommandFactoryWithReportServer(cfg *config.Config, rs manager.ReportServer) *CommandFactory {
	return &CommandFactory{
		cfg: cfg,
		rs:  rs,
	}
}

// catalog returns the catalog manager, creating the report server proxy once
// and reusing it afterwards. Proxy errors are returned unmodified.
func (f *CommandFactory) catalog(cmd *cobra.Command) (*manager.CatalogManager, error) {
	if f.cm != nil {
		return f.cm, nil
	}

	if f.rs == nil {
		rsCfg := f.cfg.ReportServer
		if f.uri != "" {
			rsCfg.URI = commoncfg.SourceRef{
				Source: commoncfg.EmbeddedSourceValue,
				Value:  f.uri,
			}
		}

		client, err := reportserver.NewClient(rsCfg)
		if err != nil {
			return nil, err
		}

		log.Debug(cmd.Context(), "Report server proxy created", slog.String("endpoint", client.Endpoint()))

		f.rs = client
	}

	f.cm = manager.NewCatalogManager(f.rs)

	return f.cm, nil
}
