// Package storage archives generated invoice PDFs.
package storage

import (
	"context"

	"github.com/smartbill/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// InvoiceArchiver stores a copy of every generated invoice PDF
type InvoiceArchiver interface {
	// Archive stores the PDF under the invoice number
	Archive(ctx context.Context, invoiceNo string, pdf []byte) error
}

// NoopArchiver discards PDFs; used when no archive target is configured
type NoopArchiver struct{}

// Archive implements InvoiceArchiver
func (NoopArchiver) Archive(ctx context.Context, invoiceNo string, pdf []byte) error {
	return nil
}

// NewInvoiceArchiver builds the archiver from configuration: S3 when
// object storage is enabled, a local directory when configured, and a
// no-op otherwise.
func NewInvoiceArchiver(storageCfg config.StorageConfig, invoiceCfg config.InvoiceConfig, logger *zap.Logger) (InvoiceArchiver, error) {
	if storageCfg.Enabled {
		archiver, err := NewS3Archiver(storageCfg, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("archiving invoices to object storage", zap.String("bucket", storageCfg.Bucket))
		return archiver, nil
	}

	if invoiceCfg.ArchiveDir != "" {
		logger.Info("archiving invoices to local directory", zap.String("dir", invoiceCfg.ArchiveDir))
		return NewFSArchiver(invoiceCfg.ArchiveDir), nil
	}

	return NoopArchiver{}, nil
}
