// Package pdftext extracts plain text from in-memory PDF files.
package pdftext

import (
	"bytes"
	"errors"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadablePDF is returned when a PDF yields no text at all, either
// because the file is malformed or because it contains no extractable text
// (e.g. a pure image scan). Callers treat this as a bad upload, not a crash.
var ErrUnreadablePDF = errors.New("could not read text from PDF")

// Extract converts PDF bytes to plain text, concatenating the text of every
// page in document order with no separator between pages. Any parser failure
// is normalized to ErrUnreadablePDF; the underlying library panics on some
// malformed inputs, so those are normalized too.
func Extract(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = ErrUnreadablePDF
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", ErrUnreadablePDF
	}

	return extractPages(reader.NumPage(), func(i int) (string, bool, error) {
		page := reader.Page(i)
		if page.V.IsNull() {
			return "", false, nil
		}
		pageText, err := page.GetPlainText(nil)
		return pageText, true, err
	})
}

// extractPages concatenates page text for pages 1..numPages. pageText
// reports the page's text and whether the page exists. Missing pages are
// skipped, but a page that fails to decode fails the whole extraction:
// partial text must never pass downstream as a complete application.
func extractPages(numPages int, pageText func(i int) (string, bool, error)) (string, error) {
	var builder strings.Builder
	for i := 1; i <= numPages; i++ {
		text, present, err := pageText(i)
		if err != nil {
			return "", ErrUnreadablePDF
		}
		if !present {
			continue
		}
		builder.WriteString(text)
	}

	if builder.Len() == 0 {
		return "", ErrUnreadablePDF
	}
	return builder.String(), nil
}
