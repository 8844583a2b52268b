package manifest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despacho-api/internal/application/delivery"
)

func datosDePrueba() delivery.ManifestData {
	return delivery.ManifestData{
		ConsignmentNo:    "CN-0001",
		BranchCode:       "BOG-01",
		CustomerName:     "Logística Andina",
		ArticleName:      "Caja mediana",
		Quantity:         2,
		AppliedRate:      decimal.NewFromInt(90),
		ReceiverName:     "Pedro Gómez",
		ReceiverDocument: "CC 1020304050",
		SignatureSHA256:  "ab12cd34",
		DeliveredAt:      time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
	}
}

func TestSeal_DigestEstable(t *testing.T) {
	sealer := NewSealer()
	data := datosDePrueba()

	digest1, xml1, err := sealer.Seal(data)
	require.NoError(t, err)
	digest2, xml2, err := sealer.Seal(data)
	require.NoError(t, err)

	assert.Equal(t, digest1, digest2, "mismo contenido, mismo digest")
	assert.Equal(t, xml1, xml2)
	assert.Len(t, digest1, 64, "sha256 en hex")
}

func TestSeal_ContenidoDistintoDigestDistinto(t *testing.T) {
	sealer := NewSealer()
	a := datosDePrueba()
	b := datosDePrueba()
	b.ReceiverName = "Otra Persona"

	digestA, _, err := sealer.Seal(a)
	require.NoError(t, err)
	digestB, _, err := sealer.Seal(b)
	require.NoError(t, err)

	assert.NotEqual(t, digestA, digestB)
}

func TestSeal_XMLLlevaLosDatosDeLaGuia(t *testing.T) {
	sealer := NewSealer()

	_, canonical, err := sealer.Seal(datosDePrueba())
	require.NoError(t, err)

	xml := string(canonical)
	assert.Contains(t, xml, "<ConsignmentNo>CN-0001</ConsignmentNo>")
	assert.Contains(t, xml, "<BranchCode>BOG-01</BranchCode>")
	assert.Contains(t, xml, "<SignatureDigest>ab12cd34</SignatureDigest>")
	assert.Contains(t, xml, "<DeliveredAt>2026-08-20T14:30:00Z</DeliveredAt>")
}
