package billing_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/factus"
	"github.com/jhoicas/Facturador-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests del pipeline de facturación
// ──────────────────────────────────────────────────────────────────────────────

type memCustomerRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{byID: map[string]*entity.Customer{}}
}

func (r *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Identification == c.Identification {
			return &domain.DuplicateError{Field: "identification"}
		}
		if existing.Email == c.Email {
			return &domain.DuplicateError{Field: "email"}
		}
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *memCustomerRepo) GetByIdentification(_ context.Context, identification string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Identification == identification {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) GetByIdentificationOrEmail(_ context.Context, identification, email string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Identification == identification || c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

type memProductRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{byID: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.CodeReference == p.CodeReference {
			return &domain.DuplicateError{Field: "code_reference"}
		}
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductRepo) GetByCodeReference(_ context.Context, codeReference string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.CodeReference == codeReference {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

type memInvoiceRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.Invoice
	itemsBy map[string][]*entity.InvoiceItem
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{
		byID:    map[string]*entity.Invoice{},
		itemsBy: map[string][]*entity.InvoiceItem{},
	}
}

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice, items []*entity.InvoiceItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.byID[inv.ID] = &cp
	stored := make([]*entity.InvoiceItem, len(items))
	for i, it := range items {
		c := *it
		stored[i] = &c
	}
	r.itemsBy[inv.ID] = stored
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.byID[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r *memInvoiceRepo) GetItemsByInvoiceID(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.itemsBy[invoiceID], nil
}

func (r *memInvoiceRepo) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.byID {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memInvoiceRepo) AttachValidation(_ context.Context, id string, factusData json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.FactusData = factusData
	inv.Status = entity.StatusValidated
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Gateway mock de Factus con contadores de llamadas
// ──────────────────────────────────────────────────────────────────────────────

type mockGateway struct {
	mu            sync.Mutex
	createCalls   int
	validateCalls int

	createResult   *factus.CreateResult
	validateResult *factus.ValidateResult
	err            error
}

func (g *mockGateway) CreateBill(_ context.Context, _ *factus.BillPayload, _ string) (*factus.CreateResult, error) {
	g.mu.Lock()
	g.createCalls++
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	return g.createResult, nil
}

func (g *mockGateway) ValidateBill(_ context.Context, _ *factus.BillPayload, _ string) (*factus.ValidateResult, error) {
	g.mu.Lock()
	g.validateCalls++
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	return g.validateResult, nil
}

func (g *mockGateway) calls() (create, validate int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.createCalls, g.validateCalls
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}
