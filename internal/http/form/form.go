package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/filter"
	"github.com/MrJamesThe3rd/salesagent/internal/importer"
	"github.com/MrJamesThe3rd/salesagent/internal/period"
	"github.com/MrJamesThe3rd/salesagent/internal/sale"
)

var errBadRequest = errors.New("bad request")

// Parser reads the multipart upload shared by every dashboard endpoint.
type Parser struct {
	importSvc *importer.Service
	loc       *time.Location
	maxBytes  int64
}

func NewParser(importSvc *importer.Service, loc *time.Location, maxBytes int64) *Parser {
	return &Parser{importSvc: importSvc, loc: loc, maxBytes: maxBytes}
}

// Parse loads the uploaded "file" field and reads the period, filter and
// question fields into a dashboard request.
func (p *Parser) Parse(w http.ResponseWriter, r *http.Request) (*importer.Result, dashboard.Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, p.maxBytes)

	if err := r.ParseMultipartForm(p.maxBytes); err != nil {
		return nil, dashboard.Request{}, fmt.Errorf("%w: failed to parse form: %w", errBadRequest, err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, dashboard.Request{}, fmt.Errorf("%w: file field is required", errBadRequest)
	}
	defer file.Close()

	sel, err := period.NewSelection(r.FormValue("period"), r.FormValue("start"), r.FormValue("end"), p.loc)
	if err != nil {
		return nil, dashboard.Request{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	loaded, err := p.importSvc.Load(file)
	if err != nil {
		return nil, dashboard.Request{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	req := dashboard.Request{
		Selection: sel,
		Filters: filter.Dimensions{
			Affiliates:     values(r, "affiliate"),
			Cities:         values(r, "city"),
			Statuses:       values(r, "status"),
			PaymentMethods: values(r, "payment_method"),
		},
		Question: strings.TrimSpace(r.FormValue("question")),
		Intent:   strings.TrimSpace(r.FormValue("intent")),
	}

	return loaded, req, nil
}

// values collects a repeated field; each occurrence may also be comma-separated.
func values(r *http.Request, key string) []string {
	var out []string

	for _, v := range r.MultipartForm.Value[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

// Status maps a parse or build error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, sale.ErrNoDateData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest),
		errors.Is(err, period.ErrInvalidRange),
		errors.Is(err, period.ErrUnknownPreset):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Error(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
