package main

import (
	"context"
	"os"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/logger"
	"github.com/samber/oops"

	"github.com/openkcm/rs-cli/cmd/rs-cli/commands"
	"github.com/openkcm/rs-cli/internal/config"
	"github.com/openkcm/rs-cli/internal/constants"
	"github.com/openkcm/rs-cli/internal/errs"
	"github.com/openkcm/rs-cli/internal/manager"
	"github.com/openkcm/rs-cli/internal/reportserver"
	"github.com/openkcm/rs-cli/utils/cmd"
)

// BuildInfo will be set by the build system
var BuildInfo = "{}"

var exitMapper = errs.NewExitMapper(
	[]errs.ExitRule{
		{InternalErrorChain: []error{manager.ErrNoAccessToRevoke}, Code: errs.ExitPrecondition},
		{InternalErrorChain: []error{manager.ErrRoleAlreadyGranted}, Code: errs.ExitPrecondition},
		{InternalErrorChain: []error{reportserver.ErrItemNotFound}, Code: errs.ExitNotFound},
		{InternalErrorChain: []error{reportserver.ErrAccessDenied}, Code: errs.ExitAccessDenied},
		{InternalErrorChain: []error{reportserver.ErrRequestFailed}, Code: errs.ExitConnection},
		{InternalErrorChain: []error{reportserver.ErrUnexpectedStatus}, Code: errs.ExitConnection},
	},
	[]errs.ExitRule{
		{InternalErrorChain: []error{reportserver.ErrUnauthorized}, Code: errs.ExitAccessDenied},
	},
)

func run(ctx context.Context, cfg *config.Config) error {
	err := commoncfg.UpdateConfigVersion(&cfg.BaseConfig, BuildInfo)
	if err != nil {
		return oops.In("main").Wrapf(err, "Failed to update the version configuration")
	}

	err = logger.InitAsDefault(cfg.Logger, cfg.Application)
	if err != nil {
		return oops.In("main").Wrapf(err, "Failed to initialise the logger")
	}

	factory := commands.NewCommandFactory(cfg)

	rootCmd := factory.NewRootCmd(ctx)
	rootCmd.AddCommand(factory.Commands(ctx, BuildInfo)...)

	err = rootCmd.ExecuteContext(ctx)
	if err != nil {
		return oops.In("main").Wrapf(err, "error executing command")
	}

	return nil
}

func main() {
	exitCode := cmd.RunFuncWithSignalHandling(run, cmd.RunFlags{
		Env:        constants.APIName,
		ExitMapper: &exitMapper,
	})
	os.Exit(exitCode)
}
