package xmlexport

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despacho-api/internal/application/export"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

func hojaDePrueba() export.RateSheet {
	return export.RateSheet{
		BranchCode:  "BOG-01",
		BranchName:  "Bogotá Centro",
		GeneratedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Articles: []export.RateSheetArticle{
			{
				Article: &entity.Article{
					ID: "a1", Name: "Caja mediana", HSNCode: "4819",
					BaseRate: decimal.NewFromInt(100), UnitOfMeasure: "unidad", MinQuantity: 1,
				},
				Overrides: []export.RateSheetOverride{
					{CustomerID: "c1", CustomerName: "Logística Andina", Rate: "85"},
				},
			},
			{
				Article: &entity.Article{
					ID: "a2", Name: "Pallet", HSNCode: "4415",
					BaseRate: decimal.NewFromInt(250), UnitOfMeasure: "unidad", MinQuantity: 1,
				},
			},
		},
	}
}

func TestXML_EstructuraYContenido(t *testing.T) {
	out, err := NewEncoder().XML(hojaDePrueba())
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, `<RateSheet branch="BOG-01" generated_at="2026-08-20T10:00:00Z">`)
	assert.Contains(t, xml, `<Article id="a1">`)
	assert.Contains(t, xml, "<BaseRate>100</BaseRate>")
	assert.Contains(t, xml, `customer="Logística Andina"`)
	// Un artículo sin overrides no lleva el bloque CustomerRates.
	a2 := xml[strings.Index(xml, `<Article id="a2">`):]
	assert.NotContains(t, a2, "<CustomerRates>")
}

func TestCSV_UnaFilaPorTarifa(t *testing.T) {
	out, err := NewEncoder().CSV(hojaDePrueba())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4, "encabezado + 2 bases + 1 override")
	assert.Equal(t, "article_id,article,hsn_code,customer,rate,kind", lines[0])
	assert.Equal(t, "a1,Caja mediana,4819,,100,base", lines[1])
	assert.Equal(t, "a1,Caja mediana,4819,Logística Andina,85,override", lines[2])
	assert.Equal(t, "a2,Pallet,4415,,250,base", lines[3])
}
