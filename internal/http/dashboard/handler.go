package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/http/form"
)

type Handler struct {
	svc    *dashboard.Service
	parser *form.Parser
}

func NewHandler(svc *dashboard.Service, parser *form.Parser) *Handler {
	return &Handler{svc: svc, parser: parser}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/dashboard", h.build)
	r.Post("/ask", h.ask)
}

func (h *Handler) build(w http.ResponseWriter, r *http.Request) {
	loaded, req, err := h.parser.Parse(w, r)
	if err != nil {
		form.Error(w, err)
		return
	}

	report, err := h.svc.Build(loaded, req)
	if err != nil {
		form.Error(w, err)
		return
	}

	form.JSON(w, http.StatusOK, report)
}

func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	loaded, req, err := h.parser.Parse(w, r)
	if err != nil {
		form.Error(w, err)
		return
	}

	if req.Question == "" && req.Intent == "" {
		http.Error(w, "question or intent field is required", http.StatusBadRequest)
		return
	}

	answer, err := h.svc.Ask(loaded.Dataset, req)
	if err != nil {
		form.Error(w, err)
		return
	}

	form.JSON(w, http.StatusOK, answer)
}
