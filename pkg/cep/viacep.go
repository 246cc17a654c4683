package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"
)

// DefaultBaseURL is the public ViaCEP endpoint.
const DefaultBaseURL = "https://viacep.com.br"

var (
	// ErrInvalid is returned for postal codes that do not have 8 digits.
	ErrInvalid = errors.New("cep: postal code must have 8 digits")
	// ErrNotFound is returned when the service has no address for the code.
	ErrNotFound = errors.New("cep: postal code not found")
)

// Address is the enrichment data returned for a postal code.
type Address struct {
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Client looks up Brazilian postal codes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a ViaCEP client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Normalize strips formatting ("01310-100" -> "01310100") and checks length.
func Normalize(code string) (string, error) {
	var b strings.Builder
	for _, r := range code {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != 8 {
		return "", ErrInvalid
	}
	return digits, nil
}

type viaCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	// ViaCEP answers unknown codes with {"erro": true} or {"erro": "true"}.
	Erro any `json:"erro"`
}

func (r viaCEPResponse) notFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// Lookup fetches the address for a postal code.
func (c *Client) Lookup(ctx context.Context, code string) (*Address, error) {
	digits, err := Normalize(code)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("cep: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cep: unexpected status %d", resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("cep: failed to decode response: %w", err)
	}
	if body.notFound() {
		return nil, ErrNotFound
	}

	return &Address{
		ZipCode:      digits,
		Street:       body.Logradouro,
		Complement:   body.Complemento,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}
