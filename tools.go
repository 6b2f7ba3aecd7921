//go:build tools

// Package tools pins the code generators run by go generate so they are
// versioned in go.mod.
package tools

import (
	_ "github.com/maxbrunsfeld/counterfeiter/v6"
)
