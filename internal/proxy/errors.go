package proxy

import "errors"

var errUnsupportedTarget = errors.New("target must be an absolute http or https URL")
