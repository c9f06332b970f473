package dashboard

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"lending-backend/internal/domain/application"
)

var csvHeader = []string{"id", "user_id", "user_email", "requested_amount", "requested_tenure", "status", "note", "created_at"}

// encodeApplicationsCSV quotes every field and doubles embedded quotes.
// Lines are joined by "\n" with no trailing newline.
func encodeApplicationsCSV(rows []application.Listing) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(csvHeader, ","))
	for _, r := range rows {
		note := ""
		if r.Note != nil {
			note = *r.Note
		}
		fields := []string{
			r.ID,
			r.UserID,
			r.UserEmail,
			r.RequestedAmount.StringFixed(2),
			strconv.Itoa(r.RequestedTenure),
			string(r.Status),
			note,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		buf.WriteByte('\n')
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
			buf.WriteByte('"')
		}
	}
	return buf.Bytes()
}
