package factus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Facturador-api/internal/domain"
)

// Rutas del API de Factus sobre la base configurada.
const (
	billsPath    = "/v1/bills"
	validatePath = "/v1/bills/validate"
	tokenPath    = "/auth/token"
)

// Gateway define el puerto de salida hacia Factus.
// La implementación concreta usa HTTP; para tests se puede inyectar un mock.
type Gateway interface {
	// CreateBill registra la factura en Factus (un solo intento, sin reintentos).
	// credential es el header Authorization completo ("Bearer <token>") y se
	// reenvía tal cual.
	CreateBill(ctx context.Context, payload *BillPayload, credential string) (*CreateResult, error)
	// ValidateBill valida la factura y devuelve el objeto bill para persistir.
	ValidateBill(ctx context.Context, payload *BillPayload, credential string) (*ValidateResult, error)
}

// Client implementa Gateway contra el API REST de Factus.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
}

var _ Gateway = (*Client)(nil)

// NewClient construye el cliente. El timeout cubre la llamada completa;
// quien necesite acotar más la latencia puede pasar un ctx con deadline.
func NewClient(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// CreateBill registra la factura vía POST /v1/bills.
func (c *Client) CreateBill(ctx context.Context, payload *BillPayload, credential string) (*CreateResult, error) {
	body, err := c.post(ctx, billsPath, payload, credential)
	if err != nil {
		return nil, err
	}
	var resp struct {
		InvoiceID json.Number `json:"invoice_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.ExternalServiceError{Reason: fmt.Sprintf("respuesta ilegible de factus: %v", err)}
	}
	id := resp.InvoiceID.String()
	return &CreateResult{
		InvoiceID: id,
		URL:       c.BillURL(id),
	}, nil
}

// ValidateBill valida la factura vía POST /v1/bills/validate y fusiona
// invoice_id dentro del objeto bill devuelto, conservando sus campos verbatim.
func (c *Client) ValidateBill(ctx context.Context, payload *BillPayload, credential string) (*ValidateResult, error) {
	body, err := c.post(ctx, validatePath, payload, credential)
	if err != nil {
		return nil, err
	}
	var resp struct {
		InvoiceID json.Number `json:"invoice_id"`
		Data      struct {
			Bill map[string]json.RawMessage `json:"bill"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.ExternalServiceError{Reason: fmt.Sprintf("respuesta ilegible de factus: %v", err)}
	}
	bill := resp.Data.Bill
	if bill == nil {
		bill = map[string]json.RawMessage{}
	}
	idJSON, _ := json.Marshal(resp.InvoiceID.String())
	bill["invoice_id"] = idJSON
	merged, err := json.Marshal(bill)
	if err != nil {
		return nil, fmt.Errorf("marshal factus data: %w", err)
	}
	return &ValidateResult{
		InvoiceID:  resp.InvoiceID.String(),
		FactusData: merged,
	}, nil
}

// ObtainToken pide un access token con las credenciales client_credentials
// configuradas.
func (c *Client) ObtainToken(ctx context.Context) (*TokenResult, error) {
	body, err := c.post(ctx, tokenPath, map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"grant_type":    "client_credentials",
	}, "")
	if err != nil {
		return nil, err
	}
	var tok TokenResult
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, &domain.ExternalServiceError{Reason: fmt.Sprintf("respuesta ilegible de factus: %v", err)}
	}
	if tok.AccessToken == "" {
		return nil, &domain.ExternalServiceError{Reason: "factus no devolvió access_token"}
	}
	return &tok, nil
}

// BillURL devuelve la URL de consulta de una factura registrada en Factus.
func (c *Client) BillURL(invoiceID string) string {
	return c.baseURL + billsPath + "/" + invoiceID
}

// post hace el POST y devuelve el cuerpo en éxito. Cualquier fallo de
// transporte o status no-2xx se reporta como ExternalServiceError conservando
// el cuerpo de la respuesta cuando existe.
func (c *Client) post(ctx context.Context, path string, payload any, credential string) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.ExternalServiceError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ExternalServiceError{StatusCode: resp.StatusCode, Reason: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.ExternalServiceError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
