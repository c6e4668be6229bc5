package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"manual.PDF", FormatPDF},
		{"report.docx", FormatDocx},
		{"notes.txt", FormatText},
		{"readme.md", FormatMarkdown},
		{"index.html", FormatHTML},
		{"page.htm", FormatHTML},
		{"setup.exe", FormatUnknown},
		{"noextension", FormatUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectFormat(tt.name), tt.name)
	}
}

func TestTextPlain(t *testing.T) {
	text, err := Text(Document{Name: "notes.txt", Data: []byte("hello world")})
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestTextPlainDropsInvalidUTF8(t *testing.T) {
	text, err := Text(Document{Name: "notes.txt", Data: []byte{'o', 'k', 0xff, 0xfe, '!'}})
	require.NoError(t, err)
	assert.Equal(t, "ok!", text)
}

func TestTextHTMLStripsScriptAndStyle(t *testing.T) {
	page := `<html><head><style>body{color:red}</style></head><body>
		<script>alert("x")</script>
		<noscript>enable js</noscript>
		<h1>Pricing</h1>
		<p>Plans start at $10.</p>
	</body></html>`

	text, err := Text(Document{Name: "page.html", Data: []byte(page)})
	require.NoError(t, err)

	assert.Equal(t, "Pricing\nPlans start at $10.", text)
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "enable js")
	assert.NotContains(t, text, "color:red")
}

func TestTextDocx(t *testing.T) {
	body := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := Text(Document{Name: "report.docx", Data: buf.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestTextDocxIgnoresForeignNamespaces(t *testing.T) {
	// Math-zone m:t runs are markup, not body text.
	body := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">
  <w:body>
    <w:p><w:r><w:t>Area of a circle.</w:t></w:r></w:p>
    <w:p><m:oMath><m:r><m:t>pi*r^2</m:t></m:r></m:oMath></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := Text(Document{Name: "formulas.docx", Data: buf.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, "Area of a circle.", text)
	assert.NotContains(t, text, "pi*r^2")
}

func TestTextDocxMissingBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Text(Document{Name: "broken.docx", Data: buf.Bytes()})
	assert.Error(t, err)
}

func TestTextUnsupported(t *testing.T) {
	_, err := Text(Document{Name: "setup.exe", Data: []byte{0x4d, 0x5a}})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.True(t, strings.Contains(err.Error(), "setup.exe"))
}
