package output

import (
	"encoding/json"
)

// JSONFormatter serializes the result as pretty-printed JSON. This is the
// boundary document; amounts appear as fixed two-decimal strings.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *Result) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
