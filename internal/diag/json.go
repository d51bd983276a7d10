package diag

import (
	"strconv"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// FormatJSON renders the sink's diagnostics as a pretty-printed JSON
// array, for tooling that consumes compiler output programmatically
// (editor integrations, CI annotations) instead of the caret-annotated
// text format Format produces.
func (s *CollectingSink) FormatJSON() (string, error) {
	doc := "[]"
	var err error
	for i, d := range s.diags {
		prefix := strconv.Itoa(i)
		doc, err = sjson.Set(doc, prefix+".line", d.Line)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+".column", d.Column)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+".message", d.Message)
		if err != nil {
			return "", err
		}
	}

	return string(pretty.Pretty([]byte(doc))), nil
}
