// Package xmlexport serializa la hoja de tarifas de una sucursal en XML y CSV
// para intercambio con sistemas externos.
package xmlexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Despacho-api/internal/application/export"
)

var _ export.Encoder = (*Encoder)(nil)

// Encoder implementa el puerto export.Encoder.
type Encoder struct{}

// NewEncoder crea el serializador.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// XML serializa la hoja de tarifas como XML indentado.
func (e *Encoder) XML(sheet export.RateSheet) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("RateSheet")
	root.CreateAttr("branch", sheet.BranchCode)
	root.CreateAttr("generated_at", sheet.GeneratedAt.UTC().Format(time.RFC3339))
	root.CreateElement("BranchName").SetText(sheet.BranchName)

	articles := root.CreateElement("Articles")
	for _, item := range sheet.Articles {
		a := articles.CreateElement("Article")
		a.CreateAttr("id", item.Article.ID)
		a.CreateElement("Name").SetText(item.Article.Name)
		a.CreateElement("HSNCode").SetText(item.Article.HSNCode)
		a.CreateElement("BaseRate").SetText(item.Article.BaseRate.String())
		a.CreateElement("UnitOfMeasure").SetText(item.Article.UnitOfMeasure)
		a.CreateElement("MinQuantity").SetText(strconv.Itoa(item.Article.MinQuantity))

		if len(item.Overrides) > 0 {
			rates := a.CreateElement("CustomerRates")
			for _, o := range item.Overrides {
				r := rates.CreateElement("Rate")
				r.CreateAttr("customer_id", o.CustomerID)
				r.CreateAttr("customer", o.CustomerName)
				r.SetText(o.Rate)
			}
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializar hoja de tarifas: %w", err)
	}
	return out, nil
}

// CSV serializa la hoja de tarifas como CSV plano: una fila por par
// (artículo, cliente) y una fila con cliente vacío para la tarifa base.
func (e *Encoder) CSV(sheet export.RateSheet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"article_id", "article", "hsn_code", "customer", "rate", "kind"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("escribir encabezado: %w", err)
	}
	for _, item := range sheet.Articles {
		base := []string{
			item.Article.ID, item.Article.Name, item.Article.HSNCode,
			"", item.Article.BaseRate.String(), "base",
		}
		if err := w.Write(base); err != nil {
			return nil, fmt.Errorf("escribir fila base: %w", err)
		}
		for _, o := range item.Overrides {
			override := []string{
				item.Article.ID, item.Article.Name, item.Article.HSNCode,
				o.CustomerName, o.Rate, "override",
			}
			if err := w.Write(override); err != nil {
				return nil, fmt.Errorf("escribir fila override: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("volcar CSV: %w", err)
	}
	return buf.Bytes(), nil
}
