package source

import (
	sortedskema "github.com/reoring/sortedskema"
	drvgojson "github.com/reoring/sortedskema/source/gojson"
)

// init in a separate package to avoid an import cycle in root. Importing this
// package selects go-json as the default driver (a stub that delegates to
// encoding/json is used unless the gojson build tag is enabled).
func init() { sortedskema.SetJSONDriver(drvgojson.Driver()) }
