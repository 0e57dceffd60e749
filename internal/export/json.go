package export

import (
	"encoding/json"
	"io"

	"github.com/tphakala/hxdiagram/internal/errors"
)

// EncodeJSON writes the document as indented JSON.
func EncodeJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.New(err).
			Category(errors.CategoryExport).
			Context("format", "json").
			Build()
	}
	return nil
}
