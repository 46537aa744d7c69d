package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/openkcm/common-sdk/pkg/logger"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/openkcm/rs-cli/internal/constants"
	"github.com/openkcm/rs-cli/internal/log"
	cliUtils "github.com/openkcm/rs-cli/utils/cli"
)

func (f *CommandFactory) NewRootCmd(ctx context.Context) *cobra.Command {
	cmd := cliUtils.NewRootCmdWithInfinitySleep(
		ctx,
		constants.AppName,
		"Reporting Services administration CLI",
		"rs-cli manages a SQL Server Reporting Services catalog through the ReportService2010 "+
			"web service, supporting: setting data source passwords, "+
			"deleting catalog items, "+
			"granting and revoking access on catalog items.",
		f.preRun,
	)

	cmd.PersistentFlags().StringVar(&f.uri, "uri", "", "Report server URI, overrides reportServer.uri of the config")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "Log at debug level")

	return cmd
}

func (f *CommandFactory) preRun(cmd *cobra.Command) error {
	if f.verbose {
		loggerCfg := f.cfg.Logger
		loggerCfg.Level = constants.LogLevelDebug

		err := logger.InitAsDefault(loggerCfg, f.cfg.Application)
		if err != nil {
			return oops.In("commands").Wrapf(err, "Failed to initialise the logger")
		}
	}

	cmd.SetContext(log.InjectInvocation(cmd.Context(), cmd.Name(), uuid.NewString()))

	return nil
}

// Commands returns every sub command of the root command
func (f *CommandFactory) Commands(ctx context.Context, buildInfo string) []*cobra.Command {
	return []*cobra.Command{
		f.NewSetPasswordCmd(ctx),
		f.NewGetDataSourceCmd(ctx),
		f.NewDeleteCmd(ctx),
		f.NewListAccessCmd(ctx),
		f.NewRevokeAccessCmd(ctx),
		f.NewGrantAccessCmd(ctx),
		f.NewVersionCmd(ctx, buildInfo),
	}
}
