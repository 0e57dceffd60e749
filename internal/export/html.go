package export

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/tphakala/hxdiagram/internal/errors"
)

var printPage = template.Must(template.New("print").Parse(`<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page{size:A3 landscape;margin:0}
html,body{margin:0;padding:0;background:#fff}
svg{display:block;width:100vw;height:auto}
</style>
</head>
<body onload="window.print()">
{{.SVG}}
</body>
</html>
`))

// EncodePrintHTML writes an A3 landscape page that embeds the SVG rendition
// and opens the print dialog when loaded.
func EncodePrintHTML(w io.Writer, doc *Document, lang, title string) error {
	var buf bytes.Buffer
	if err := EncodeSVG(&buf, doc); err != nil {
		return err
	}
	if lang == "" {
		lang = "en"
	}

	data := struct {
		Lang  string
		Title string
		SVG   template.HTML
	}{
		Lang:  lang,
		Title: title,
		SVG:   template.HTML(stripXMLHeader(buf.String())), //nolint:gosec // produced by EncodeSVG
	}
	if err := printPage.Execute(w, data); err != nil {
		return errors.New(err).
			Category(errors.CategoryExport).
			Context("format", "html").
			Build()
	}
	return nil
}

// stripXMLHeader drops the XML declaration and doctype, which are invalid
// inside an HTML body
func stripXMLHeader(s string) string {
	if i := strings.Index(s, "<svg"); i > 0 {
		return s[i:]
	}
	return s
}
