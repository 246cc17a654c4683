package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size (GS ! n)
const (
	SizeNormal = 0x00
	SizeDouble = 0x11
	SizeTall   = 0x01
)

// PaperWidth maps paper size in millimetres to characters per line.
func PaperWidth(mm int) int {
	if mm >= 80 {
		return 48
	}
	return 32
}

// Document builds an ESC/POS byte stream. Text is folded to ASCII because
// most thermal printers ship with a code page that has no Portuguese accents.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document for the given characters-per-line width.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = 32
	}
	d := &Document{width: width}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Width returns the characters per line.
func (d *Document) Width() int { return d.width }

func (d *Document) Align(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) Bold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) Size(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Line writes one line of text.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(Fold(s))
	d.buf.WriteByte(LF)
	return d
}

// Linef writes one formatted line of text.
func (d *Document) Linef(format string, args ...interface{}) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// Title writes a centered, bold, double-size heading.
func (d *Document) Title(s string) *Document {
	return d.Align(AlignCenter).Bold(true).Size(SizeDouble).
		Line(s).
		Size(SizeNormal).Bold(false).Align(AlignLeft)
}

// Center writes a centered line.
func (d *Document) Center(s string) *Document {
	return d.Align(AlignCenter).Line(s).Align(AlignLeft)
}

// Rule writes a full-width separator.
func (d *Document) Rule(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// Pair writes a left label and a right-aligned value on the same line,
// truncating the label when both do not fit.
func (d *Document) Pair(label, value string) *Document {
	label, value = Fold(label), Fold(value)
	room := d.width - len(value) - 1
	if room < 1 {
		room = 1
	}
	if len(label) > room {
		label = label[:room]
	}
	pad := d.width - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	d.buf.WriteString(label)
	d.buf.WriteString(strings.Repeat(" ", pad))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// Item writes a sale line: "2x Armacao Ray-Ban      R$ 800,00".
func (d *Document) Item(qty int, name, total string) *Document {
	return d.Pair(fmt.Sprintf("%dx %s", qty, name), total)
}

// Barcode prints a CODE128 barcode with its human-readable text below.
func (d *Document) Barcode(data string) *Document {
	data = Fold(data)
	if len(data) == 0 || len(data) > 253 {
		return d
	}
	d.buf.Write([]byte{GS, 'H', 2})  // HRI below
	d.buf.Write([]byte{GS, 'h', 80}) // height in dots
	d.buf.Write([]byte{GS, 'w', 2})  // module width
	d.buf.Write([]byte{GS, 'k', 73, byte(len(data) + 2), '{', 'B'})
	d.buf.WriteString(data)
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// Cut feeds a few lines and performs a partial cut.
func (d *Document) Cut() *Document {
	d.Feed(3)
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

var foldTable = map[rune]string{
	'á': "a", 'à': "a", 'â': "a", 'ã': "a", 'ä': "a",
	'é': "e", 'ê': "e", 'è': "e",
	'í': "i", 'î': "i",
	'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o",
	'ú': "u", 'ü': "u",
	'ç': "c",
	'Á': "A", 'À': "A", 'Â': "A", 'Ã': "A",
	'É': "E", 'Ê': "E",
	'Í': "I",
	'Ó': "O", 'Ô': "O", 'Õ': "O",
	'Ú': "U",
	'Ç': "C",
	'º': "o", 'ª': "a",
}

// Fold replaces accented letters by their ASCII base and drops anything else
// outside printable ASCII.
func Fold(s string) string {
	if isASCII(s) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		if repl, ok := foldTable[r]; ok {
			b.WriteString(repl)
		}
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
