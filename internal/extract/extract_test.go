package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFromBytesPlainText(t *testing.T) {
	res, err := FromBytes([]byte("Jane Doe\nEXPERIENCE\n‣ Led migration"), "txt")
	require.NoError(t, err)

	assert.Equal(t, "txt", res.FileType)
	assert.Contains(t, res.Text, "• Led migration")
	assert.Len(t, res.SHA256, 64)
	assert.Nil(t, res.Pages)
}

func TestFromBytesDocx(t *testing.T) {
	data := buildDocx(t, `<w:document><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Staff Engineer</w:t></w:r></w:p></w:document>`)

	res, err := FromBytes(data, "docx")
	require.NoError(t, err)
	assert.Equal(t, "docx", res.FileType)
	assert.Contains(t, res.Text, "Jane Doe")
	assert.Contains(t, res.Text, "Staff Engineer")
}

func TestFromBytesDocxMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = FromBytes(buf.Bytes(), "docx")
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestFromBytesHTML(t *testing.T) {
	html := `<!doctype html><html><head><style>p{}</style></head><body><h1>Jane Doe</h1><p>Staff Engineer</p><ul><li>Led migration</li></ul></body></html>`

	res, err := FromBytes([]byte(html), "html")
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Jane Doe")
	assert.Contains(t, res.Text, "Led migration")
	assert.NotContains(t, res.Text, "style")
}

func TestFromBytesUnsupported(t *testing.T) {
	_, err := FromBytes([]byte("anything"), "xlsx")
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, err.Error(), "xlsx")
}

func TestFromBytesBadPDF(t *testing.T) {
	_, err := FromBytes([]byte("%PDF-not really"), "pdf")
	require.Error(t, err)
}

func TestCanonicalFileType(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		data     []byte
		expected string
	}{
		{"Extension", "pdf", nil, "pdf"},
		{"Filename", "resume.docx", nil, "docx"},
		{"Htm alias", "htm", nil, "html"},
		{"Plain alias", "text", nil, "txt"},
		{"Sniff pdf", "", []byte("%PDF-1.7 ..."), "pdf"},
		{"Sniff zip container", "", []byte("PK\x03\x04rest"), "docx"},
		{"Sniff html", "", []byte("<!doctype html><html>"), "html"},
		{"Default txt", "", []byte("plain words"), "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, canonicalFileType(tt.declared, tt.data))
		})
	}
}
