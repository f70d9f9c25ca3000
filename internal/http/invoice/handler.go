package invoice

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/errs"
	"github.com/MrJamesThe3rd/biztime/internal/http/render"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

var errInvalidID = errs.BadRequest("invalid id")

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/companies/{code}", h.companyInvoices)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}

	return id, nil
}

// amt accepts a JSON number or a numeric string.
type createInvoiceRequest struct {
	CompCode string           `json:"comp_code" validate:"required"`
	Amount   *decimal.Decimal `json:"amt" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		CompCode: req.CompCode,
		Amount:   *req.Amount,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toRowEnvelope(inv))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toListResponse(invoices))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toDetailEnvelope(inv))
}

type updateInvoiceRequest struct {
	Amount *decimal.Decimal `json:"amt" validate:"required"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req updateInvoiceRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	inv, err := h.svc.Update(r.Context(), id, invoice.UpdateParams{Amount: *req.Amount})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toRowEnvelope(inv))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	render.Deleted(w)
}

func (h *Handler) companyInvoices(w http.ResponseWriter, r *http.Request) {
	ci, err := h.svc.CompanyWithInvoices(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toCompanyInvoicesEnvelope(ci))
}
