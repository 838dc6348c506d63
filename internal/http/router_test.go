package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/salesagent/internal/dashboard"
	"github.com/MrJamesThe3rd/salesagent/internal/export"
	salesHttp "github.com/MrJamesThe3rd/salesagent/internal/http"
	dashboardHandler "github.com/MrJamesThe3rd/salesagent/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/salesagent/internal/http/export"
	"github.com/MrJamesThe3rd/salesagent/internal/http/form"
	"github.com/MrJamesThe3rd/salesagent/internal/importer"
	"github.com/MrJamesThe3rd/salesagent/internal/trend"
)

const salesCSV = `Código;Status;Iniciada em;Total;Comissão;Cliente (E-mail);Cliente (Cidade);Produto;Afiliado (Nome)
A;aprovada;04/03/2024 10:00:00;R$ 100,00;R$ 10,00;a@x.com;Recife;Curso A;Joana
A;estornada;05/03/2024 10:00:00;R$ 200,00;R$ 20,00;a@x.com;Recife;Curso A;Joana
B;recusada;11/03/2024 10:00:00;R$ 300,00;R$ 30,00;b@x.com;Natal;Curso B;Carlos
B;aprovada;12/03/2024 10:00:00;R$ 400,00;R$ 40,00;b@x.com;Natal;Curso B;Carlos
`

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	clock := dashboard.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)).AnyTimes()

	var (
		dashboardSvc = dashboard.NewService(clock, time.UTC, trend.DefaultLimits)
		parser       = form.NewParser(importer.NewService(time.UTC), time.UTC, 1<<20)
	)

	return salesHttp.New(
		[]string{"*"},
		dashboardHandler.NewHandler(dashboardSvc, parser),
		exportHandler.NewHandler(export.NewService(), dashboardSvc, parser),
	)
}

func upload(t *testing.T, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if content != "" {
		fw, err := mw.CreateFormFile("file", "vendas.csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestRouter(t *testing.T) {
	type testCase struct {
		name       string
		path       string
		content    string
		fields     map[string]string
		wantStatus int
		verify     func(t *testing.T, rec *httptest.ResponseRecorder)
	}

	tests := []testCase{
		{
			name:       "Dashboard",
			path:       "/api/v1/dashboard",
			content:    salesCSV,
			fields:     map[string]string{"period": "all", "city": "Natal"},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

				summary := body["summary"].(map[string]any)
				assert.Equal(t, "700", summary["revenue"])
				assert.Len(t, body["cards"], 6)
			},
		},
		{
			name:       "Ask",
			path:       "/api/v1/ask",
			content:    salesCSV,
			fields:     map[string]string{"question": "Quanto de comissão eu recebi?"},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body dashboard.Answer
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "💸 Total de comissões: R$ 100,00", body.Text)
			},
		},
		{
			name:       "AskWithoutQuestion",
			path:       "/api/v1/ask",
			content:    salesCSV,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingFile",
			path:       "/api/v1/dashboard",
			fields:     map[string]string{"period": "all"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnknownPeriod",
			path:       "/api/v1/dashboard",
			content:    salesCSV,
			fields:     map[string]string{"period": "fortnight"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "NoDates",
			path:       "/api/v1/dashboard",
			content:    "Código;Total\nA;10,00\n",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "ExportCSV",
			path:       "/api/v1/export/csv",
			content:    salesCSV,
			fields:     map[string]string{"affiliate": "Joana"},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio_vendas_")
				assert.Equal(t, 3, bytes.Count(rec.Body.Bytes(), []byte("\n")))
			},
		},
		{
			name:       "ExportPDF",
			path:       "/api/v1/export/pdf",
			content:    salesCSV,
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
			},
		},
		{
			name:       "ExportUnknownFormat",
			path:       "/api/v1/export/xlsx",
			content:    salesCSV,
			wantStatus: http.StatusBadRequest,
		},
	}

	router := newRouter(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := upload(t, tt.content, tt.fields)

			req := httptest.NewRequest(http.MethodPost, tt.path, body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.verify != nil {
				tt.verify(t, rec)
			}
		})
	}
}

func TestRouter_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
