package document

import "io"

type UploadInput struct {
	FileName          string
	ContentType       string
	Body              io.Reader
	LoanApplicationID string
}
