package entity

import (
	"encoding/json"
	"time"
)

// Estados del ciclo de vida de una factura local.
const (
	StatusPending   = "pending"   // guardada localmente, sin validar con Factus
	StatusValidated = "validated" // validada con Factus; FactusData presente
	StatusError     = "error"     // reservado para marcado manual/operativo
)

// Invoice representa la cabecera canónica de una factura, independiente del
// formato de entrada con el que llegó (externo o local).
type Invoice struct {
	ID                string
	NumberingRangeID  int
	ReferenceCode     string
	Observation       string
	PaymentForm       string
	PaymentDueDate    string // YYYY-MM-DD, se conserva textual de extremo a extremo
	PaymentMethodCode string
	BillingPeriod     BillingPeriod
	Status            string
	CustomerID        string
	// FactusData guarda tal cual el objeto bill devuelto por Factus
	// (invoice_id, cufe, qr, public_url, ...). Nil mientras esté pending.
	FactusData json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BillingPeriod es el periodo facturado. Fechas YYYY-MM-DD, horas HH:MM:SS.
type BillingPeriod struct {
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
}

// FactusInfo son los campos conocidos dentro de FactusData. El resto de campos
// del bill se conservan en el JSON crudo aunque no estén aquí.
type FactusInfo struct {
	InvoiceID json.Number `json:"invoice_id"`
	CUFE      string      `json:"cufe"`
	QR        string      `json:"qr"`
	PublicURL string      `json:"public_url"`
}

// FactusInfo decodifica los campos conocidos de FactusData.
// Devuelve nil si la factura aún no fue validada.
func (i *Invoice) FactusInfo() *FactusInfo {
	if len(i.FactusData) == 0 {
		return nil
	}
	var info FactusInfo
	if err := json.Unmarshal(i.FactusData, &info); err != nil {
		return nil
	}
	return &info
}
