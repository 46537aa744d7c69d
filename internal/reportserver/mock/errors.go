package mock

import "errors"

var ErrInjected = errors.New("injected report server failure")
