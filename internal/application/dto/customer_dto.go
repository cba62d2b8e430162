package dto

import "github.com/jhoicas/Facturador-api/internal/domain/entity"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Identification           string `json:"identification"`
	DV                       string `json:"dv"`
	Company                  string `json:"company,omitempty"`
	TradeName                string `json:"trade_name,omitempty"`
	Names                    string `json:"names"`
	Address                  string `json:"address"`
	Email                    string `json:"email"`
	Phone                    string `json:"phone"`
	LegalOrganizationID      string `json:"legal_organization_id"`
	TributeID                string `json:"tribute_id"`
	IdentificationDocumentID string `json:"identification_document_id"`
	MunicipalityID           string `json:"municipality_id"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID                       string `json:"id"`
	Identification           string `json:"identification"`
	DV                       string `json:"dv"`
	Company                  string `json:"company,omitempty"`
	TradeName                string `json:"trade_name,omitempty"`
	Names                    string `json:"names"`
	Address                  string `json:"address"`
	Email                    string `json:"email"`
	Phone                    string `json:"phone"`
	LegalOrganizationID      string `json:"legal_organization_id"`
	TributeID                string `json:"tribute_id"`
	IdentificationDocumentID string `json:"identification_document_id"`
	MunicipalityID           string `json:"municipality_id"`
}

// ToCustomerResponse mapea la entidad a su representación de salida.
func ToCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:                       c.ID,
		Identification:           c.Identification,
		DV:                       c.DV,
		Company:                  c.Company,
		TradeName:                c.TradeName,
		Names:                    c.Names,
		Address:                  c.Address,
		Email:                    c.Email,
		Phone:                    c.Phone,
		LegalOrganizationID:      c.LegalOrganizationID,
		TributeID:                c.TributeID,
		IdentificationDocumentID: c.IdentificationDocumentID,
		MunicipalityID:           c.MunicipalityID,
	}
}
