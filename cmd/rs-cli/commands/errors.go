package commands

import "errors"

var (
	ErrReadPassword = errors.New("failed to read password from stdin")
	ErrFormatOutput = errors.New("failed to format output")
)
