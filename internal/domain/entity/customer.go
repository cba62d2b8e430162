package entity

import "time"

// Customer representa un cliente con su perfil fiscal (facturación Colombia).
// Identification (NIT o cédula) y Email son únicos; el cliente se crea de forma
// perezosa la primera vez que una factura lo referencia y no se modifica después.
type Customer struct {
	ID                       string
	Identification           string // NIT o cédula, clave natural
	DV                       string // dígito de verificación
	Company                  string
	TradeName                string
	Names                    string
	Address                  string
	Email                    string
	Phone                    string
	LegalOrganizationID      string
	TributeID                string
	IdentificationDocumentID string
	MunicipalityID           string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
