package resume

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, MIMEPDF, DetectMIME("cv.bin", "application/pdf"))
	assert.Equal(t, MIMEText, DetectMIME("cv", "text/plain; charset=utf-8"))
	assert.Equal(t, MIMEDOCX, DetectMIME("CV.DOCX", "application/octet-stream"))
	assert.Equal(t, MIMEPDF, DetectMIME("cv.pdf", ""))
	assert.Equal(t, "", DetectMIME("cv.exe", "application/octet-stream"))
}

func TestExtractText(t *testing.T) {
	got, err := Extract(MIMEText, []byte("  Jane Doe\nNurse  \n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nNurse", got)
}

func TestExtractTruncates(t *testing.T) {
	got, err := Extract(MIMEText, []byte(strings.Repeat("é", MaxRunes+10)))
	require.NoError(t, err)
	assert.Equal(t, MaxRunes, len([]rune(got)))
}

func TestExtractRejects(t *testing.T) {
	_, err := Extract("image/png", []byte("x"))
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = Extract(MIMEText, make([]byte, MaxBytes+1))
	assert.Error(t, err)

	_, err = Extract(MIMEPDF, []byte("not a pdf"))
	assert.Error(t, err)

	_, err = Extract(MIMEDOCX, []byte("not a zip"))
	assert.Error(t, err)
}

func TestExtractDocx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0"?><w:document><w:body>` +
			`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t>Senior Nurse</w:t></w:r></w:p>` +
			`</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0"?><Relationships></Relationships>`,
	}
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	got, err := Extract(MIMEDOCX, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe Senior Nurse", got)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "a b", stripTags("<x>a</x><y>b</y>"))
	assert.Equal(t, "", stripTags("<only/>"))
}

func TestRead(t *testing.T) {
	data, err := Read(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = Read(bytes.NewReader(make([]byte, MaxBytes+1)))
	assert.Error(t, err)
}
