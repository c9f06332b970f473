package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"lending-backend/internal/domain/application"
	"lending-backend/internal/domain/document"
	"lending-backend/internal/domain/errs"
	"lending-backend/internal/domain/user"
	"lending-backend/pkg/id"
)

var ErrUnknownApplication = errs.Validation("unknown loan application")

type Usecase struct {
	docs     document.Repository
	apps     application.Repository
	store    document.Store
	maxBytes int64
	now      func() time.Time
}

func NewUsecase(docs document.Repository, apps application.Repository, store document.Store, maxBytes int64) *Usecase {
	return &Usecase{
		docs:     docs,
		apps:     apps,
		store:    store,
		maxBytes: maxBytes,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Upload stores the bytes first and the metadata row second; if the row
// cannot be written the stored file is removed again.
func (u *Usecase) Upload(ctx context.Context, caller user.Identity, in UploadInput) (*document.Document, error) {
	if in.Body == nil {
		return nil, document.ErrNoFile
	}

	var appID *string
	if a := strings.TrimSpace(in.LoanApplicationID); a != "" {
		app, err := u.apps.GetByID(ctx, a)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownApplication
			}
			return nil, err
		}
		if !caller.CanAccess(app.UserID) {
			return nil, errs.Forbidden("forbidden")
		}
		appID = &app.ID
	}

	now := u.now()
	name := originalName(in.FileName)
	key := fmt.Sprintf("%d_%s%s", now.UnixMilli(), uuid.NewString(), safeExt(name))

	body := in.Body
	if u.maxBytes > 0 {
		body = io.LimitReader(in.Body, u.maxBytes+1)
	}
	n, err := u.store.Put(ctx, key, body)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	if n == 0 {
		u.discard(ctx, key)
		return nil, document.ErrNoFile
	}
	if u.maxBytes > 0 && n > u.maxBytes {
		u.discard(ctx, key)
		return nil, document.ErrTooLarge
	}

	ctype := strings.TrimSpace(in.ContentType)
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	d := &document.Document{
		ID:                id.NewID32(),
		UserID:            caller.ID,
		LoanApplicationID: appID,
		FileKey:           key,
		FileName:          name,
		FileType:          ctype,
		FileSize:          n,
		UploadedAt:        now,
	}
	if err := u.docs.Create(ctx, d); err != nil {
		u.discard(ctx, key)
		return nil, err
	}
	return d, nil
}

func (u *Usecase) discard(ctx context.Context, key string) {
	if err := u.store.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("file_key", key).Error("documents: failed to remove stored file")
	}
}

func (u *Usecase) ListMine(ctx context.Context, caller user.Identity) ([]document.Document, error) {
	out, err := u.docs.ListByUser(ctx, caller.ID, 0)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []document.Document{}
	}
	return out, nil
}

func (u *Usecase) ListAll(ctx context.Context) ([]document.Listing, error) {
	out, err := u.docs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []document.Listing{}
	}
	return out, nil
}

// Open returns the document and a reader over its bytes. The caller closes
// the reader.
func (u *Usecase) Open(ctx context.Context, caller user.Identity, docID string) (*document.Document, io.ReadCloser, error) {
	d, err := u.docs.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, document.ErrNotFound
		}
		return nil, nil, err
	}
	if !caller.CanAccess(d.UserID) {
		return nil, nil, errs.Forbidden("forbidden")
	}
	rc, err := u.store.Open(ctx, d.FileKey)
	if err != nil {
		if errors.Is(err, document.ErrFileMissing) {
			log.WithFields(log.Fields{"document_id": d.ID, "file_key": d.FileKey}).
				Error("documents: metadata row has no stored file")
		}
		return nil, nil, err
	}
	return d, rc, nil
}

// SweepOrphans deletes stored files older than grace that no document row
// references. It returns how many were removed.
func (u *Usecase) SweepOrphans(ctx context.Context, grace time.Duration) (int, error) {
	keys, err := u.store.ListOlderThan(ctx, u.now().Add(-grace))
	if err != nil || len(keys) == 0 {
		return 0, err
	}
	known, err := u.docs.ExistingKeys(ctx, keys)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, k := range keys {
		if _, ok := known[k]; ok {
			continue
		}
		if err := u.store.Delete(ctx, k); err != nil {
			log.WithError(err).WithField("file_key", k).Warn("documents: sweep failed to delete orphan")
			continue
		}
		removed++
	}
	return removed, nil
}

func originalName(name string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, `\`, "/")))
	if name == "" || name == "." || name == "/" {
		return "upload"
	}
	return name
}

// safeExt keeps a short alphanumeric extension, lower-cased.
func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
