package ticket

import (
	"bytes"
	"encoding/base64"
	"unicode"

	"github.com/skip2/go-qrcode"
	"golang.org/x/text/unicode/norm"
)

// ESC/POS Commands
const (
	ESC byte = 0x1B
	GS  byte = 0x1D
	NL  byte = 0x0A
)

// codePage1252 is the ESC t argument selecting Windows-1252.
const codePage1252 byte = 0x10

// Lines groups the three sections of a rendered ticket: header/metadata,
// itemized detail, totals and footer. Generated fresh per print and
// discarded after dispatch.
type Lines struct {
	Header []string
	Detail []string
	Footer []string
}

// Flat returns all sections as a single line list.
func (l *Lines) Flat() []string {
	out := make([]string, 0, len(l.Header)+len(l.Detail)+len(l.Footer))
	out = append(out, l.Header...)
	out = append(out, l.Detail...)
	return append(out, l.Footer...)
}

// cp1252 maps the non-ASCII code points a Spanish-language ticket can
// reasonably contain to their Windows-1252 byte values.
var cp1252 = map[rune]byte{
	'á': 0xE1, 'é': 0xE9, 'í': 0xED, 'ó': 0xF3, 'ú': 0xFA,
	'Á': 0xC1, 'É': 0xC9, 'Í': 0xCD, 'Ó': 0xD3, 'Ú': 0xDA,
	'à': 0xE0, 'è': 0xE8, 'ì': 0xEC, 'ò': 0xF2, 'ù': 0xF9,
	'ä': 0xE4, 'ë': 0xEB, 'ï': 0xEF, 'ö': 0xF6, 'ü': 0xFC,
	'â': 0xE2, 'ê': 0xEA, 'î': 0xEE, 'ô': 0xF4, 'û': 0xFB,
	'Ü': 0xDC, 'ñ': 0xF1, 'Ñ': 0xD1, 'ç': 0xE7, 'Ç': 0xC7,
	'¿': 0xBF, '¡': 0xA1, 'º': 0xBA, 'ª': 0xAA, '°': 0xB0,
	'€': 0x80, '¢': 0xA2, '£': 0xA3, '¥': 0xA5,
	'§': 0xA7, '©': 0xA9, '®': 0xAE, '«': 0xAB, '»': 0xBB,
	'·': 0xB7, '±': 0xB1, '÷': 0xF7, '×': 0xD7,
	'½': 0xBD, '¼': 0xBC, '¾': 0xBE,
	'‘': 0x91, '’': 0x92, // curly single quotes
	'“': 0x93, '”': 0x94, // curly double quotes
	'–': 0x96, '—': 0x97, // en/em dash
	'…': 0x85, '•': 0x95, // ellipsis, bullet
}

// asciiFallback handles typographic punctuation for code points that
// survived the CP1252 table and diacritic stripping.
var asciiFallback = map[rune]string{
	'‘': "'", '’': "'", '‚': ",",
	'“': `"`, '”': `"`, '„': `"`,
	'–': "-", '—': "-", '…': "...",
	' ': " ",
}

// EncodeCP1252 transliterates s into CP1252 printer bytes. ASCII passes
// through; other code points go through the CP1252 table, then
// diacritic stripping, then the ASCII punctuation fallback, and finally
// degrade to '?'. The encoder never fails, so one odd character can't
// corrupt a ticket.
func EncodeCP1252(s string) []byte {
	var out bytes.Buffer
	for _, r := range s {
		encodeRune(&out, r)
	}
	return out.Bytes()
}

func encodeRune(out *bytes.Buffer, r rune) {
	if r <= 0x7F {
		out.WriteByte(byte(r))
		return
	}
	if b, ok := cp1252[r]; ok {
		out.WriteByte(b)
		return
	}
	// Strip diacritics: decompose and retake the ASCII base character.
	if base := asciiBase(r); base != 0 {
		out.WriteByte(base)
		return
	}
	if s, ok := asciiFallback[r]; ok {
		out.WriteString(s)
		return
	}
	out.WriteByte('?')
}

// asciiBase returns the ASCII base character of r after NFD
// decomposition, or 0 when decomposition doesn't produce one.
func asciiBase(r rune) byte {
	for _, d := range norm.NFD.String(string(r)) {
		if unicode.Is(unicode.Mn, d) {
			continue
		}
		if d <= 0x7F {
			return byte(d)
		}
		return 0
	}
	return 0
}

// Encoder accumulates ESC/POS commands for one ticket.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an initialized printer byte stream: printer reset
// followed by the CP1252 codepage select.
func NewEncoder() *Encoder {
	e := &Encoder{}
	e.buf.Write([]byte{ESC, '@'})
	e.buf.Write([]byte{ESC, 't', codePage1252})
	return e
}

// SetSize selects the character cell size; 1,1 is normal, 1,2 double
// height.
func (e *Encoder) SetSize(width, height byte) {
	size := ((width - 1) << 4) | (height - 1)
	e.buf.Write([]byte{GS, '!', size})
}

// WriteLine appends one transliterated text line plus a line feed.
func (e *Encoder) WriteLine(line string) {
	e.buf.Write(EncodeCP1252(line))
	e.buf.WriteByte(NL)
}

// Feed advances n blank lines.
func (e *Encoder) Feed(n int) {
	for i := 0; i < n; i++ {
		e.buf.WriteByte(NL)
	}
}

// Cut appends the full paper-cut command.
func (e *Encoder) Cut() {
	e.buf.Write([]byte{GS, 'V', 0x00})
}

// WriteQR renders data as a QR code and appends it as a GS v 0 raster
// bitmap, the most widely supported image command on thermal printers.
func (e *Encoder) WriteQR(data string, size int) error {
	qr, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return err
	}
	img := qr.Image(size)

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	widthBytes := (width + 7) / 8

	// GS v 0 m xL xH yL yH d1...dk
	e.buf.Write([]byte{GS, 'v', '0', 0})
	e.buf.WriteByte(byte(widthBytes % 256))
	e.buf.WriteByte(byte(widthBytes / 256))
	e.buf.WriteByte(byte(height % 256))
	e.buf.WriteByte(byte(height / 256))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x += 8 {
			var b byte
			for bit := 0; bit < 8; bit++ {
				px := x + bit
				if px >= bounds.Max.X {
					break
				}
				r, g, bl, _ := img.At(px, y).RGBA()
				gray := (299*r + 587*g + 114*bl) / 1000
				// bit=1 prints black
				if gray < 0x8000 {
					b |= 1 << uint(7-bit)
				}
			}
			e.buf.WriteByte(b)
		}
	}

	e.buf.WriteByte(NL)
	return nil
}

// Bytes returns the accumulated command stream.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// EncodeTicket converts ticket lines into a complete ESC/POS byte
// sequence: init, codepage select, the three sections (detail in double
// height when kitchenMode is set), trailing feeds and a paper cut.
func EncodeTicket(lines *Lines, kitchenMode bool) []byte {
	e := NewEncoder()

	for _, l := range lines.Header {
		e.WriteLine(l)
	}

	if kitchenMode {
		e.SetSize(1, 2)
	}
	for _, l := range lines.Detail {
		e.WriteLine(l)
	}
	if kitchenMode {
		e.SetSize(1, 1)
	}

	for _, l := range lines.Footer {
		e.WriteLine(l)
	}

	e.Feed(3)
	e.Cut()
	return e.Bytes()
}

// EncodeTicketBase64 returns the ESC/POS stream base64-encoded for
// transport inside the RawBT URL scheme.
func EncodeTicketBase64(lines *Lines, kitchenMode bool) string {
	return base64.StdEncoding.EncodeToString(EncodeTicket(lines, kitchenMode))
}
