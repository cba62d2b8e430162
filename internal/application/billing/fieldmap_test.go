package billing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
)

// Las dos direcciones se derivan de la misma tabla, así que componerlas debe
// ser la identidad para todo campo con pareja.
func TestFieldMap_LasDireccionesSonInversas(t *testing.T) {
	for _, pair := range fieldPairs {
		canonical, wire := pair[0], pair[1]
		assert.Equal(t, canonical, canonicalName(wireName(canonical)))
		assert.Equal(t, wire, wireName(canonicalName(wire)))
	}
}

func TestFieldMap_SinParejasDuplicadas(t *testing.T) {
	seenCanonical := map[string]bool{}
	seenWire := map[string]bool{}
	for _, pair := range fieldPairs {
		require.False(t, seenCanonical[pair[0]], "campo canónico repetido: %s", pair[0])
		require.False(t, seenWire[pair[1]], "campo wire repetido: %s", pair[1])
		seenCanonical[pair[0]] = true
		seenWire[pair[1]] = true
	}
}

// Los struct tags de los DTO deben coincidir con la tabla: cada clave de
// nivel superior del formato local debe mapear vía wireName a una clave del
// formato externo.
func TestFieldMap_CoincideConLosTags(t *testing.T) {
	localKeys := topLevelKeys(t, dto.LocalInvoiceRequest{})
	externalKeys := topLevelKeys(t, dto.ExternalInvoiceRequest{})

	for key := range localKeys {
		assert.Contains(t, externalKeys, wireName(key),
			"la clave local %q debe tener contraparte externa %q", key, wireName(key))
	}
}

func topLevelKeys(t *testing.T, v any) map[string]struct{} {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	keys := make(map[string]struct{}, len(m))
	for k := range m {
		keys[k] = struct{}{}
	}
	return keys
}

// Los campos sin pareja se escriben igual en ambos lados.
func TestFieldMap_CamposSinParejaPasanTalCual(t *testing.T) {
	for _, name := range []string{"observation", "customer", "items", "code", "identification"} {
		assert.Equal(t, name, wireName(name))
		assert.Equal(t, name, canonicalName(name))
	}
}
