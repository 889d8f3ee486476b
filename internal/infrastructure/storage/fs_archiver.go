package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FSArchiver stores invoice PDFs on the local filesystem
type FSArchiver struct {
	dir string
}

// NewFSArchiver creates an archiver writing into dir
func NewFSArchiver(dir string) *FSArchiver {
	return &FSArchiver{dir: dir}
}

// Archive writes the PDF to <dir>/<invoiceNo>.pdf
func (a *FSArchiver) Archive(ctx context.Context, invoiceNo string, pdf []byte) error {
	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	path := filepath.Join(a.dir, invoiceNo+".pdf")
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write invoice %s: %w", invoiceNo, err)
	}
	return nil
}

var _ InvoiceArchiver = (*FSArchiver)(nil)
