// Package bundled provides the default instruction document embedded in the
// binary, used as the last tier of the fallback chain.
package bundled

import (
	_ "embed"
)

//go:embed default.md
var document string

func Get() string {
	return document
}
