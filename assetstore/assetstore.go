// Package assetstore abstracts the "store blob, get URL" collaborator used
// for book cover uploads.
package assetstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store interface {
	// Save writes the blob and returns a publicly reachable URL for it.
	Save(name, contentType string, r io.Reader) (string, error)
}

// Disk stores blobs under Dir and returns URLs below BaseURL + PublicPath.
// The router serves Dir at PublicPath.
type Disk struct {
	Dir        string
	BaseURL    string
	PublicPath string
}

func NewDisk(dir, baseURL, publicPath string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{Dir: dir, BaseURL: baseURL, PublicPath: publicPath}, nil
}

func (d *Disk) Save(name, contentType string, r io.Reader) (string, error) {
	ext := filepath.Ext(name)
	key := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(d.Dir, key))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	url := strings.TrimSuffix(d.BaseURL, "/") + d.PublicPath + "/" + key
	return url, nil
}
