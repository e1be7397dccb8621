// Package file is implementation of storage interface.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"

	"redesocial/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "file")

type fileStorage struct {
	path string
}

// New creates new instance of fileStorage writing to path.
func New(path string) storage.Storage {
	return fileStorage{
		path: path,
	}
}

func (s fileStorage) Save(_ context.Context, doc *storage.Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := ioutil.WriteFile(s.path, b, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}

	log.WithField("path", s.path).Debug("document saved")

	return nil
}

func (s fileStorage) Load(_ context.Context) (*storage.Document, error) {
	b, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc storage.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return &doc, nil
}
