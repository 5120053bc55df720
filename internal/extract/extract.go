// Package extract decodes resume document bytes (PDF, DOCX, HTML, plain
// text) into normalized text plus extraction stats.
package extract

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	pdf "github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-parser/internal/parsing"
)

// Result carries the extracted, normalized text and the stats downstream
// meta reporting wants.
type Result struct {
	Text     string
	FileType string
	Pages    *int
	SHA256   string
}

// FromBytes decodes the document and normalizes its text. fileType may be
// an extension ("pdf"), a filename ("resume.pdf"), or empty, in which
// case the type is sniffed from the bytes.
func FromBytes(data []byte, fileType string) (*Result, error) {
	ft := canonicalFileType(fileType, data)

	res := &Result{
		FileType: ft,
		SHA256:   hashBytes(data),
	}

	var text string
	var err error
	switch ft {
	case "pdf":
		var pages int
		text, pages, err = pdfText(data)
		if err == nil {
			res.Pages = &pages
		}
	case "docx":
		text, err = docxText(data)
	case "html":
		text, err = htmlText(data)
	case "txt":
		text = string(data)
	default:
		return nil, &UnsupportedTypeError{FileType: ft}
	}
	if err != nil {
		return nil, err
	}

	res.Text = parsing.Normalize(text)
	return res, nil
}

// canonicalFileType resolves the declared type, falling back to byte
// sniffing for the container formats.
func canonicalFileType(fileType string, data []byte) string {
	ft := strings.ToLower(strings.TrimSpace(fileType))
	if ext := filepath.Ext(ft); ext != "" {
		ft = ext
	}
	ft = strings.TrimPrefix(ft, ".")

	switch ft {
	case "pdf", "docx", "html", "txt":
		return ft
	case "htm":
		return "html"
	case "text", "plain":
		return "txt"
	}

	// A declared but unrecognized type is the caller's mistake; sniffing
	// is only for undeclared bytes.
	if ft != "" {
		return ft
	}

	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return "pdf"
	case bytes.HasPrefix(data, []byte("PK")):
		return "docx"
	case looksLikeHTML(data):
		return "html"
	default:
		return "txt"
	}
}

func looksLikeHTML(data []byte) bool {
	head := strings.ToLower(string(data[:min(len(data), 256)]))
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html")
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func pdfText(data []byte) (string, int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, &DecodeError{Message: "reading pdf", Cause: err}
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", 0, &DecodeError{Message: "extracting pdf text", Cause: err}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", 0, &DecodeError{Message: "reading pdf text stream", Cause: err}
	}
	return buf.String(), r.NumPage(), nil
}

var reXMLTags = regexp.MustCompile(`<[^>]+>`)

// docxText pulls word/document.xml out of the zip container and strips
// the markup, keeping paragraph boundaries as newlines.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Message: "opening docx container", Cause: err}
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", &DecodeError{Message: "opening document.xml", Cause: err}
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", &DecodeError{Message: "reading document.xml", Cause: err}
		}
		break
	}
	if len(docXML) == 0 {
		return "", &DecodeError{Message: "no document.xml found in docx"}
	}

	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	return reXMLTags.ReplaceAllString(xml, " "), nil
}

// htmlText renders the document body to text, one line per block element.
func htmlText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &DecodeError{Message: "parsing html", Cause: err}
	}
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, div, td, br").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 && !s.Is("li, p, h1, h2, h3, h4, h5, h6") {
			return
		}
		if t := strings.TrimSpace(s.Text()); t != "" {
			b.WriteString(t)
			b.WriteString("\n")
		}
	})
	if b.Len() == 0 {
		return doc.Text(), nil
	}
	return b.String(), nil
}
