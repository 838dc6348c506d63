package export

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/export"
	"github.com/MrJamesThe3rd/salesagent/internal/http/form"
)

type Handler struct {
	svc       *export.Service
	dashboard *dashboard.Service
	parser    *form.Parser
}

func NewHandler(svc *export.Service, dashboardSvc *dashboard.Service, parser *form.Parser) *Handler {
	return &Handler{svc: svc, dashboard: dashboardSvc, parser: parser}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{format}", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	formats, err := export.ParseFormats(chi.URLParam(r, "format"))
	if err != nil || len(formats) != 1 {
		http.Error(w, "format must be one of csv, json, pdf", http.StatusBadRequest)
		return
	}

	f := formats[0]

	loaded, req, err := h.parser.Parse(w, r)
	if err != nil {
		form.Error(w, err)
		return
	}

	report, err := h.dashboard.Build(loaded, req)
	if err != nil {
		form.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.svc.Filename(f)))

	if err := h.svc.Write(w, report, f); err != nil {
		slog.Error("failed to write export", "format", f, "error", err)
	}
}
