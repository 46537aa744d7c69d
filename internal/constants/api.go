package constants

const (
	APIName = "RS_CLI"
	AppName = "rs-cli"
)

const (
	DefaultConfigPath1 = "/etc/rs-cli"
	DefaultConfigPath2 = "$HOME/.rs-cli"
)

// Logger levels: info by default, debug with --verbose
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
)
