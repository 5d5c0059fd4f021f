package rest

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tamnd/productsvc/internal/service"
)

//go:embed templates/product_form.html
var templateFS embed.FS

var productFormTmpl = template.Must(template.ParseFS(templateFS, "templates/product_form.html"))

// FormHandler serves a plain HTML page to create and list products. It is a
// thin convenience wrapper over the same create operation the JSON API uses.
type FormHandler struct {
	service service.ProductService
	logger  *slog.Logger
}

func NewFormHandler(service service.ProductService, logger *slog.Logger) *FormHandler {
	return &FormHandler{
		service: service,
		logger:  logger.With("component", "form"),
	}
}

// RegisterRoutes registers the HTML form routes.
func (h *FormHandler) RegisterRoutes(r *chi.Mux) {
	r.Get("/product", h.ShowForm)
	r.Post("/product", h.SubmitForm)
}

type formPage struct {
	Error    string
	Products []service.ProductListItemDto
}

// ShowForm renders the creation form together with the current product list.
func (h *FormHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "")
}

// SubmitForm creates a product from form fields and redirects back on success.
func (h *FormHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, "invalid form submission")
		return
	}
	name := r.PostFormValue("name")
	priceRaw := r.PostFormValue("price")
	if name == "" || priceRaw == "" {
		h.render(w, r, "name and price are required")
		return
	}
	price, err := strconv.ParseInt(priceRaw, 10, 64)
	if err != nil {
		h.render(w, r, "price must be a number")
		return
	}

	if _, err := h.service.Create(r.Context(), service.ProductCreateDto{Name: name, Price: price}); err != nil {
		h.logger.WarnContext(r.Context(), "Form create failed", "error", err)
		h.render(w, r, "could not create product: "+err.Error())
		return
	}
	http.Redirect(w, r, "/product", http.StatusSeeOther)
}

func (h *FormHandler) render(w http.ResponseWriter, r *http.Request, errMsg string) {
	page := formPage{Error: errMsg}
	if list, err := h.service.FindAll(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list products for form view", "error", err)
	} else {
		page.Products = list.Results
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
	}
	if err := productFormTmpl.Execute(w, page); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render product form", "error", err)
	}
}
