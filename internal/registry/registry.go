// Package registry looks up company identity in the French business register
// (Sirene) from a SIREN or SIRET number.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Sirene legal-unit endpoint; the SIREN is appended.
	DefaultBaseURL = "https://entreprise.data.gouv.fr/api/sirene/v3/unites_legales/"
	// DefaultTimeout bounds one lookup.
	DefaultTimeout = 10 * time.Second

	unknownName           = "Nom inconnu"
	unknownRepresentative = "Dirigeant non disponible via l'API"
	unknownAddress        = "Adresse inconnue"
)

var (
	// ErrInvalidSIREN is returned for identifiers that are neither 9 nor 14 digits.
	ErrInvalidSIREN = errors.New("invalid SIREN: must be 9 digits")
	// ErrNotFound is returned when the register has no such company.
	ErrNotFound = errors.New("SIREN not found in the register")
)

// HTTPError reports an unexpected status from the register.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("register returned HTTP %d", e.StatusCode)
}

// Company is the identity block shown next to an analysis.
type Company struct {
	SIREN          string `json:"siren"`
	Name           string `json:"name"`
	Representative string `json:"representative"`
	Address        string `json:"address"`
	PostalCode     string `json:"postal_code"`
	City           string `json:"city"`
}

// CityLine returns "postal code city".
func (c *Company) CityLine() string {
	return strings.TrimSpace(c.PostalCode + " " + c.City)
}

// NormalizeSIREN trims s and reduces a 14-digit SIRET to its SIREN.
func NormalizeSIREN(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) == 14 && isDigits(s) {
		s = s[:9]
	}
	if len(s) != 9 || !isDigits(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSIREN, s)
	}
	return s, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Client queries the register over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL; an empty baseURL uses
// DefaultBaseURL and a zero timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type legalUnitResponse struct {
	LegalUnit legalUnit `json:"unite_legale"`
}

type legalUnit struct {
	Denomination string   `json:"denomination"`
	UsualName1   string   `json:"denomination_usuelle_1"`
	UsualName2   string   `json:"denomination_usuelle_2"`
	UsualName3   string   `json:"denomination_usuelle_3"`
	FirstName    string   `json:"prenom_usuel"`
	UsageName    string   `json:"nom_usage"`
	LastName     string   `json:"nom"`
	Periods      []period `json:"periodes_unite_legale"`
}

type period struct {
	StreetNumber string `json:"numero_voie"`
	Street       string `json:"libelle_voie"`
	PostalCode   string `json:"code_postal"`
	City         string `json:"libelle_commune"`
}

// Lookup fetches the company identified by a SIREN or SIRET.
func (c *Client) Lookup(ctx context.Context, siren string) (*Company, error) {
	siren, err := NormalizeSIREN(siren)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+siren, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying register: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, siren)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	var body legalUnitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding register response: %w", err)
	}
	return newCompany(siren, body.LegalUnit), nil
}

func newCompany(siren string, u legalUnit) *Company {
	c := &Company{
		SIREN:          siren,
		Name:           firstNonEmpty(u.Denomination, u.UsualName1, u.UsualName2, u.UsualName3, unknownName),
		Representative: strings.TrimSpace(u.FirstName + " " + firstNonEmpty(u.UsageName, u.LastName)),
		Address:        unknownAddress,
	}
	if c.Representative == "" {
		c.Representative = unknownRepresentative
	}
	// The first period is the most recent.
	if len(u.Periods) > 0 {
		p := u.Periods[0]
		if addr := strings.TrimSpace(p.StreetNumber + " " + p.Street); addr != "" {
			c.Address = addr
		}
		c.PostalCode = p.PostalCode
		c.City = p.City
	}
	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
