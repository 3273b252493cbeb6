//go:build tools

// Package tools pins the code generators used by go:generate in go.mod.
package tools

import (
	_ "github.com/dmarkham/enumer"
	_ "go.uber.org/mock/mockgen"
)
