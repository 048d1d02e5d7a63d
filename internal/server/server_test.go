package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soldes-dev/soldes/internal/registry"
)

type fakeRegistry struct {
	company *registry.Company
	err     error
}

func (f *fakeRegistry) Lookup(_ context.Context, siren string) (*registry.Company, error) {
	if _, err := registry.NormalizeSIREN(siren); err != nil {
		return nil, err
	}
	return f.company, f.err
}

func newTestServer(t *testing.T, reg CompanyLookup) *httptest.Server {
	t.Helper()
	s := New(Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry: reg,
	})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

// upload builds a multipart body with one file part per label.
func upload(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for label, path := range files {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		part, err := mw.CreateFormFile(label, filepath.Base(path))
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

type analysisDoc struct {
	Session string `json:"session"`
	Current string `json:"current"`
	Years   []struct {
		Label    string `json:"label"`
		Source   string `json:"source"`
		Balanced *bool  `json:"balanced"`
		Error    string `json:"error"`
		Message  string `json:"message"`
	} `json:"years"`
	Comparison []struct {
		Line     string  `json:"line"`
		Current  *string `json:"current"`
		Previous *string `json:"previous"`
		Variance *string `json:"variance"`
		Percent  *string `json:"percent"`
	} `json:"comparison"`
}

func TestAnalyse_TwoYears(t *testing.T) {
	srv := newTestServer(t, nil)
	body, ct := upload(t, map[string]string{
		"N":   "../../testdata/balance_sample.csv",
		"N-1": "../../testdata/fec_sample.txt",
	}, nil)

	resp, err := http.Post(srv.URL+"/v1/analyses", ct, body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc analysisDoc
	decode(t, resp, &doc)
	assert.NotEmpty(t, doc.Session)
	require.Len(t, doc.Years, 2)
	assert.Equal(t, "N", doc.Years[0].Label)
	assert.Equal(t, "balance_sample.csv", doc.Years[0].Source)
	assert.Equal(t, "N-1", doc.Years[1].Label)

	ca := doc.Comparison[0]
	assert.Equal(t, "Chiffre d'affaires", ca.Line)
	require.NotNil(t, ca.Variance)
	assert.Equal(t, "12500", *ca.Variance)
	require.NotNil(t, ca.Percent)
	assert.Equal(t, "833.33", *ca.Percent)
}

func TestAnalyse_BadYearDoesNotBlockOthers(t *testing.T) {
	srv := newTestServer(t, nil)
	body, ct := upload(t, map[string]string{
		"2024": "../../testdata/fec_sample.txt",
		"2023": "../../testdata/bank_statement.csv",
	}, map[string]string{"current": "2024", "previous": "2023"})

	resp, err := http.Post(srv.URL+"/v1/analyses", ct, body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc analysisDoc
	decode(t, resp, &doc)
	assert.Equal(t, "2024", doc.Current)
	require.Len(t, doc.Years, 2)
	assert.Equal(t, "2023", doc.Years[0].Label)
	assert.NotEmpty(t, doc.Years[0].Error)
	assert.Equal(t, "Exercice 2023 : format non reconnu pour le contrôle.", doc.Years[0].Message)
	require.NotNil(t, doc.Years[1].Balanced)
	assert.True(t, *doc.Years[1].Balanced)

	ca := doc.Comparison[0]
	require.NotNil(t, ca.Current)
	assert.Equal(t, "1500", *ca.Current)
	assert.Nil(t, ca.Previous)
	assert.Nil(t, ca.Percent)
}

func TestAnalyse_NoFiles(t *testing.T) {
	srv := newTestServer(t, nil)
	body, ct := upload(t, nil, map[string]string{"current": "N"})
	resp, err := http.Post(srv.URL+"/v1/analyses", ct, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/v1/analyses", "application/json", bytes.NewBufferString("{}"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e errorResponse
	decode(t, resp, &e)
	assert.Contains(t, e.Error, "reading upload")
}

func TestDetail(t *testing.T) {
	srv := newTestServer(t, nil)
	body, ct := upload(t, map[string]string{
		"N":   "../../testdata/balance_sample.csv",
		"N-1": "../../testdata/fec_sample.txt",
	}, nil)

	resp, err := http.Post(srv.URL+"/v1/analyses/detail?year=N-1&line=Charges+de+personnel", ct, body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc detailResponse
	decode(t, resp, &doc)
	assert.Equal(t, "N-1", doc.Year)
	assert.Equal(t, "64", doc.Rule)
	assert.True(t, doc.Curated)
	require.Len(t, doc.Accounts, 1)
	assert.Equal(t, "641000", doc.Accounts[0].Number)
	assert.Equal(t, "300.00", doc.Total.StringFixed(2))
}

func TestDetail_Errors(t *testing.T) {
	srv := newTestServer(t, nil)

	body, ct := upload(t, map[string]string{"N": "../../testdata/fec_sample.txt"}, nil)
	resp, err := http.Post(srv.URL+"/v1/analyses/detail?year=N", ct, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, ct = upload(t, map[string]string{"N": "../../testdata/fec_sample.txt"}, nil)
	resp, err = http.Post(srv.URL+"/v1/analyses/detail?year=N-1&line=Marge+globale", ct, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, ct = upload(t, map[string]string{"N": "../../testdata/bank_statement.csv"}, nil)
	resp, err = http.Post(srv.URL+"/v1/analyses/detail?year=N&line=Marge+globale", ct, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCompany(t *testing.T) {
	reg := &fakeRegistry{company: &registry.Company{SIREN: "552100554", Name: "ACME"}}
	srv := newTestServer(t, reg)

	resp, err := http.Get(srv.URL + "/v1/companies/552100554")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var c registry.Company
	decode(t, resp, &c)
	assert.Equal(t, "ACME", c.Name)

	resp, err = http.Get(srv.URL + "/v1/companies/12")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompany_Errors(t *testing.T) {
	tests := []struct {
		name string
		reg  CompanyLookup
		want int
	}{
		{"not configured", nil, http.StatusServiceUnavailable},
		{"not found", &fakeRegistry{err: registry.ErrNotFound}, http.StatusNotFound},
		{"upstream status", &fakeRegistry{err: &registry.HTTPError{StatusCode: 500}}, http.StatusBadGateway},
		{"network", &fakeRegistry{err: io.ErrUnexpectedEOF}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.reg)
			resp, err := http.Get(srv.URL + "/v1/companies/552100554")
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRateLimit(t *testing.T) {
	s := New(Options{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry:  &fakeRegistry{company: &registry.Company{}},
		RateLimit: 2,
	})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Get(srv.URL + "/v1/companies/552100554")
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
