package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/soldes-dev/soldes/internal/analysis"
	"github.com/soldes-dev/soldes/internal/report"
	"github.com/soldes-dev/soldes/internal/sig"
)

const (
	defaultCurrent  = "N"
	defaultPrevious = "N-1"
)

// loadUploads parses a multipart request and loads every file part as the
// fiscal year named by its field. Labels are loaded in sorted order.
func (s *Server) loadUploads(w http.ResponseWriter, r *http.Request, only string) (*analysis.Session, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	labels := make([]string, 0, len(r.MultipartForm.File))
	for label := range r.MultipartForm.File {
		if only == "" || label == only {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("no fiscal year file uploaded")
	}
	sort.Strings(labels)

	sess := analysis.NewSession(analysis.WithLogger(s.logger))
	for _, label := range labels {
		fh := r.MultipartForm.File[label][0]
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("opening upload %s: %w", label, err)
		}
		sess.LoadYear(label, fh.Filename, f)
		f.Close()
	}
	return sess, nil
}

func (s *Server) handleAnalyse(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadUploads(w, r, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	current := r.FormValue("current")
	if current == "" {
		current = defaultCurrent
	}
	previous := r.FormValue("previous")
	if previous == "" {
		previous = defaultPrevious
	}
	writeJSON(w, http.StatusOK, report.NewAnalysis(sess, current, previous))
}

type detailAccount struct {
	Number string          `json:"number"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type detailResponse struct {
	Session  string          `json:"session"`
	Year     string          `json:"year"`
	Line     string          `json:"line"`
	Rule     string          `json:"rule"`
	Curated  bool            `json:"curated"`
	Accounts []detailAccount `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	year := r.URL.Query().Get("year")
	line := r.URL.Query().Get("line")
	if year == "" || line == "" {
		writeError(w, http.StatusBadRequest, "year and line are required")
		return
	}

	sess, err := s.loadUploads(w, r, year)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	accounts, err := sess.Detail(year, line)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	rule, curated := sig.DetailRule(line)
	resp := detailResponse{
		Session:  sess.ID,
		Year:     year,
		Line:     line,
		Rule:     rule.String(),
		Curated:  curated,
		Accounts: make([]detailAccount, 0, len(accounts)),
		Total:    decimal.Zero,
	}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, detailAccount{Number: a.Number, Label: a.Label, Amount: a.Amount})
		resp.Total = resp.Total.Add(a.Amount)
	}
	writeJSON(w, http.StatusOK, resp)
}
