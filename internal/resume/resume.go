package resume

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MIMEText = "text/plain"
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// MaxBytes is the largest upload we accept.
	MaxBytes = 5 << 20
	// MaxRunes bounds how much resume text goes into the prompt.
	MaxRunes = 20000
)

var extensions = map[string]string{
	".txt":  MIMEText,
	".md":   MIMEText,
	".pdf":  MIMEPDF,
	".docx": MIMEDOCX,
}

// DetectMIME trusts the declared content type unless the browser fell back
// to a generic one, in which case the file extension decides.
func DetectMIME(filename, declared string) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			switch mt {
			case MIMEText, MIMEPDF, MIMEDOCX:
				return mt
			}
		}
	}
	return extensions[strings.ToLower(filepath.Ext(filename))]
}

// Extract returns the plain text of a resume, trimmed to MaxRunes.
func Extract(mimeType string, data []byte) (string, error) {
	if len(data) > MaxBytes {
		return "", fmt.Errorf("resume is larger than %d bytes", MaxBytes)
	}

	var (
		text string
		err  error
	)
	switch mimeType {
	case MIMEText:
		text = string(data)
	case MIMEPDF:
		text, err = extractPDFText(bytes.NewReader(data))
	case MIMEDOCX:
		text, err = extractDocxText(bytes.NewReader(data))
	default:
		return "", fmt.Errorf("unsupported file type: %q", mimeType)
	}
	if err != nil {
		return "", err
	}
	return truncate(strings.TrimSpace(text), MaxRunes), nil
}

func extractPDFText(r *bytes.Reader) (string, error) {
	pdfReader, err := pdf.NewReader(r, r.Size())
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var textBuilder strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}

func extractDocxText(r *bytes.Reader) (string, error) {
	doc, err := docx.ReadDocxFromMemory(r, r.Size())
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return stripTags(doc.Editable().GetContent()), nil
}

// GetContent hands back the raw document XML; keep the text runs only.
func stripTags(xml string) string {
	var b strings.Builder
	inTag := false
	for _, r := range xml {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			if inTag {
				b.WriteByte(' ')
			}
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// Read is a convenience for multipart uploads.
func Read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	if len(data) > MaxBytes {
		return nil, fmt.Errorf("resume is larger than %d bytes", MaxBytes)
	}
	return data, nil
}
