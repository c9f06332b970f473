package document

import (
	"context"
	"io"
	"time"

	"lending-backend/internal/domain/errs"
)

var (
	ErrNotFound    = errs.Wrap(errs.ErrNotFound, "document not found")
	ErrFileMissing = errs.Wrap(errs.ErrNotFound, "file missing")
	ErrNoFile      = errs.Validation("no file uploaded")
	ErrTooLarge    = errs.Validation("file exceeds the upload limit")
)

// Table: documents. FileKey addresses the bytes in the content Store.
type Document struct {
	ID                string    `gorm:"column:id;type:char(32);primaryKey" json:"id"`
	UserID            string    `gorm:"column:user_id;type:char(32);not null;index" json:"user_id"`
	LoanApplicationID *string   `gorm:"column:loan_application_id;type:char(32);index" json:"loan_application_id"`
	FileKey           string    `gorm:"column:file_key;size:255;not null;uniqueIndex:ux_documents_file_key" json:"file_key"`
	FileName          string    `gorm:"column:file_name;size:255;not null" json:"file_name"`
	FileType          string    `gorm:"column:file_type;size:128" json:"file_type"`
	FileSize          int64     `gorm:"column:file_size" json:"file_size"`
	UploadedAt        time.Time `gorm:"column:uploaded_at;not null" json:"uploaded_at"`
}

func (Document) TableName() string { return "documents" }

type Listing struct {
	Document  `gorm:"embedded"`
	UserEmail string `gorm:"column:user_email" json:"user_email"`
}

// Store keeps document bytes, independent of the metadata rows.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// ListOlderThan returns keys whose content was written before t.
	ListOlderThan(ctx context.Context, t time.Time) ([]string, error)
}
