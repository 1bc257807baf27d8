// Package document persists extraction artifacts: the JSON lesson document
// and an optional spreadsheet export.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/heartmarshall/n3vocab/internal/domain"
)

// Document is either a *domain.VocabularyDocument or a *domain.GrammarDocument.
type Document interface {
	Validate() error
}

// WriteJSON validates doc and writes it to path as indented UTF-8 JSON.
// The file is written to a temporary sibling and renamed into place, so a
// failed run never leaves a truncated document behind.
func WriteJSON(path string, doc Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("write %s: encode: %w: %w", path, domain.ErrWriteFailure, err)
	}
	data = append(data, '\n')

	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w: %w", path, domain.ErrWriteFailure, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads a document written by WriteJSON. The concrete type depends on
// the "kind" field.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w: %w", path, domain.ErrSourceUnavailable, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// Decode parses and validates a JSON document.
func Decode(data []byte) (Document, error) {
	var head struct {
		Kind domain.Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceParse, err)
	}

	var doc Document
	switch head.Kind {
	case domain.KindVocabulary:
		doc = &domain.VocabularyDocument{}
	case domain.KindGrammar:
		doc = &domain.GrammarDocument{}
	default:
		return nil, fmt.Errorf("%w: unknown document kind %q", domain.ErrSourceParse, head.Kind)
	}

	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceParse, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ErrUnsupportedDocument is returned for Document values of an unknown type.
var ErrUnsupportedDocument = errors.New("unsupported document type")
