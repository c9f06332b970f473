package http

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"lending-backend/internal/domain/document"
	docuc "lending-backend/internal/usecase/document"
	"lending-backend/pkg/id"
)

type DocumentHandler struct{ uc *docuc.Usecase }

func NewDocumentHandler(uc *docuc.Usecase) *DocumentHandler { return &DocumentHandler{uc: uc} }

// Upload expects multipart form field "file" and an optional
// "loan_application_id".
func (h *DocumentHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, document.ErrNoFile)
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, fmt.Errorf("open upload: %w", err))
	}
	defer f.Close()

	d, err := h.uc.Upload(c.Request().Context(), caller(c), docuc.UploadInput{
		FileName:          fh.Filename,
		ContentType:       fh.Header.Get(echo.HeaderContentType),
		Body:              f,
		LoanApplicationID: c.FormValue("loan_application_id"),
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, map[string]any{"document": d})
}

func (h *DocumentHandler) ListMine(c echo.Context) error {
	items, err := h.uc.ListMine(c.Request().Context(), caller(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"documents": items})
}

func (h *DocumentHandler) ListAll(c echo.Context) error {
	items, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"documents": items})
}

func (h *DocumentHandler) Download(c echo.Context) error {
	docID := c.Param("id")
	if !id.IsID32(docID) {
		return fail(c, document.ErrNotFound)
	}
	d, rc, err := h.uc.Open(c.Request().Context(), caller(c), docID)
	if err != nil {
		return fail(c, err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, asciiName(d.FileName), url.PathEscape(d.FileName)))
	c.Response().Header().Set(echo.HeaderContentLength, fmt.Sprint(d.FileSize))
	return c.Stream(http.StatusOK, d.FileType, rc)
}

// asciiName keeps the plain filename= parameter printable ASCII.
func asciiName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			r = '_'
		}
		out = append(out, r)
	}
	return string(out)
}
