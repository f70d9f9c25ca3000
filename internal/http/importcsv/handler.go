package importcsv

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/errs"
	"github.com/MrJamesThe3rd/biztime/internal/http/render"
	"github.com/MrJamesThe3rd/biztime/internal/importer"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type invoiceResponse struct {
	ID       int64           `json:"id"`
	CompCode string          `json:"comp_code"`
	Amount   decimal.Decimal `json:"amt"`
	Paid     bool            `json:"paid"`
	AddDate  time.Time       `json:"add_date"`
	PaidDate *time.Time      `json:"paid_date"`
}

type importResponse struct {
	Imported int                 `json:"imported"`
	Charset  string              `json:"charset"`
	Invoices []invoiceResponse   `json:"invoices"`
	Failed   []importer.RowError `json:"failed"`
}

// importCSV accepts either a multipart form with a "file" field or a raw
// text/csv body.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, err := uploadedFile(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = errs.BadRequest("upload exceeds 10MB")
		}

		render.Error(w, r, err)

		return
	}

	status := http.StatusOK

	switch {
	case len(result.Created) > 0:
		status = http.StatusCreated
	case len(result.Failed) > 0:
		status = http.StatusUnprocessableEntity
	}

	render.JSON(w, status, toImportResponse(result))
}

func uploadedFile(r *http.Request) (io.ReadCloser, error) {
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "text/csv" {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, errs.BadRequest("failed to parse form: " + err.Error())
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, errs.BadRequest("file field is required")
	}

	return file, nil
}

func toImportResponse(result *importer.Result) importResponse {
	resp := importResponse{
		Imported: len(result.Created),
		Charset:  result.Charset,
		Invoices: make([]invoiceResponse, 0, len(result.Created)),
		Failed:   result.Failed,
	}

	for _, inv := range result.Created {
		resp.Invoices = append(resp.Invoices, invoiceResponse{
			ID:       inv.ID,
			CompCode: inv.CompCode,
			Amount:   inv.Amount,
			Paid:     inv.Paid,
			AddDate:  inv.AddDate,
			PaidDate: inv.PaidDate,
		})
	}

	if resp.Failed == nil {
		resp.Failed = []importer.RowError{}
	}

	return resp
}
