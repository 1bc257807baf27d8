// Package source extracts page-ordered plain text from textbook files.
// Pages are separated by a form feed.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/n3vocab/internal/domain"
)

// PageSeparator separates pages in extracted text.
const PageSeparator = "\f"

// ProgressFunc is called after each page with the pages done and the total.
type ProgressFunc func(done, total int)

// Reader extracts text from PDF, office and plain text files.
type Reader struct {
	onPage ProgressFunc
}

// Option configures a Reader.
type Option func(*Reader)

// WithProgress reports page progress while a document is read.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Reader) { r.onPage = fn }
}

// NewReader returns a Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read returns the text of the file at path. A missing or unreadable file
// yields domain.ErrSourceUnavailable; content that cannot be decoded yields
// domain.ErrSourceParse.
func (r *Reader) Read(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w: %w", path, domain.ErrSourceUnavailable, err)
	}

	text, err := r.ReadBytes(ctx, content, filepath.Ext(path))
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return text, nil
}

// ReadBytes extracts text from content according to ext (with the leading dot).
func (r *Reader) ReadBytes(ctx context.Context, content []byte, ext string) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(ext) {
	case ".pdf":
		text, err = r.readPDF(ctx, content)
	case ".xlsx":
		text, err = r.readSpreadsheet(content)
	case ".docx", ".odt", ".rtf":
		text, err = readOffice(content)
	default:
		text, err = readPlain(content)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrSourceParse, err)
	}
	return text, nil
}

func (r *Reader) progress(done, total int) {
	if r.onPage != nil {
		r.onPage(done, total)
	}
}
