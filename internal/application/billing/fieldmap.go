package billing

// Tabla única de correspondencias entre los nombres canónicos (camelCase)
// y los nombres del protocolo externo (snake_case). Las dos direcciones se
// derivan de la misma tabla para que sean inversas por construcción; los
// struct tags de los DTO deben coincidir con estas parejas y el test de la
// tabla lo verifica.
var fieldPairs = [...][2]string{
	{"numberingRangeId", "numbering_range_id"},
	{"referenceCode", "reference_code"},
	{"paymentForm", "payment_form"},
	{"paymentDueDate", "payment_due_date"},
	{"paymentMethodCode", "payment_method_code"},
	{"billingPeriod", "billing_period"},
	{"startDate", "start_date"},
	{"startTime", "start_time"},
	{"endDate", "end_date"},
	{"endTime", "end_time"},
	{"tradeName", "trade_name"},
	{"legalOrganizationId", "legal_organization_id"},
	{"tributeId", "tribute_id"},
	{"identificationDocumentId", "identification_document_id"},
	{"municipalityId", "municipality_id"},
	{"codeReference", "code_reference"},
	{"taxRate", "tax_rate"},
	{"unitMeasureId", "unit_measure_id"},
	{"standardCodeId", "standard_code_id"},
	{"isExcluded", "is_excluded"},
	{"discountRate", "discount_rate"},
	{"withholdingTaxes", "withholding_taxes"},
	{"withholdingTaxRate", "withholding_tax_rate"},
}

var (
	canonicalToWire = make(map[string]string, len(fieldPairs))
	wireToCanonical = make(map[string]string, len(fieldPairs))
)

func init() {
	for _, p := range fieldPairs {
		canonicalToWire[p[0]] = p[1]
		wireToCanonical[p[1]] = p[0]
	}
}

// wireName devuelve el nombre snake_case de un campo canónico. Los campos sin
// pareja (observation, customer, items, code...) se escriben igual en ambos
// lados y se devuelven tal cual.
func wireName(canonical string) string {
	if wire, ok := canonicalToWire[canonical]; ok {
		return wire
	}
	return canonical
}

// canonicalName devuelve el nombre camelCase de un campo del protocolo externo.
func canonicalName(wire string) string {
	if canonical, ok := wireToCanonical[wire]; ok {
		return canonical
	}
	return wire
}
