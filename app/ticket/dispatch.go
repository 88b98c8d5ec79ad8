package ticket

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/skip2/go-qrcode"
)

// RawBTScheme is the URL scheme of the RawBT Android print bridge.
const RawBTScheme = "rawbt:base64,"

// Dispatch is everything a client needs to print a ticket. On Android
// it navigates to RawBTURL; anywhere else it opens HTML in a new window
// and lets the document's own script invoke the print dialog.
type Dispatch struct {
	RawBTURL string `json:"rawbt_url"`
	HTML     string `json:"html"`
	ByteSize int    `json:"byte_size"`
}

// RawBTURL wraps an ESC/POS byte stream in the rawbt: URL scheme.
func RawBTURL(payload []byte) string {
	return RawBTScheme + base64.StdEncoding.EncodeToString(payload)
}

var printDocTmpl = template.Must(template.New("printdoc").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { size: 80mm auto; margin: 0; }
  body { width: 72mm; margin: 0 auto; font-family: monospace; font-size: 10pt; }
  pre { margin: 0; white-space: pre; }
  .detail pre { font-weight: bold; }
  img.qr { display: block; margin: 2mm auto; width: 30mm; height: 30mm; }
</style>
</head>
<body>
<section class="header">{{range .Header}}<pre>{{.}}</pre>
{{end}}</section>
<section class="detail">{{range .Detail}}<pre>{{.}}</pre>
{{end}}</section>
<section class="footer">{{range .Footer}}<pre>{{.}}</pre>
{{end}}</section>
{{if .QRDataURI}}<img class="qr" src="{{.QRDataURI}}" alt="QR">{{end}}
<script>
  window.onload = function () {
    window.print();
    window.close();
  };
</script>
</body>
</html>
`))

type printDoc struct {
	Title     string
	Header    []string
	Detail    []string
	Footer    []string
	QRDataURI template.URL
}

// PrintHTML renders a standalone print document for the browser
// fallback, styled for 80mm print media. trackingURL, when non-empty,
// is embedded as a QR image so the kitchen copy links back to the
// order.
func PrintHTML(title string, lines *Lines, trackingURL string) (string, error) {
	doc := printDoc{
		Title:  title,
		Header: lines.Header,
		Detail: lines.Detail,
		Footer: lines.Footer,
	}

	if trackingURL != "" {
		png, err := qrcode.Encode(trackingURL, qrcode.Medium, 256)
		if err != nil {
			return "", fmt.Errorf("failed to generate tracking QR: %w", err)
		}
		doc.QRDataURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	}

	var buf bytes.Buffer
	if err := printDocTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render print document: %w", err)
	}
	return buf.String(), nil
}

// BuildDispatch assembles both print paths for one ticket.
func BuildDispatch(title string, lines *Lines, kitchenMode bool, trackingURL string) (*Dispatch, error) {
	payload := EncodeTicket(lines, kitchenMode)

	html, err := PrintHTML(title, lines, trackingURL)
	if err != nil {
		return nil, err
	}

	return &Dispatch{
		RawBTURL: RawBTURL(payload),
		HTML:     html,
		ByteSize: len(payload),
	}, nil
}
