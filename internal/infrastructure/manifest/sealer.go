// Package manifest construye y sella el manifiesto XML de evidencia de una
// entrega: el documento se canonicaliza (C14N) y su SHA-256 queda como digest
// verificable junto al POD.
package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Despacho-api/internal/application/delivery"
)

var _ delivery.ManifestSealer = (*Sealer)(nil)

// Sealer implementa el puerto ManifestSealer.
type Sealer struct{}

// NewSealer crea el servicio.
func NewSealer() *Sealer {
	return &Sealer{}
}

// Seal arma el manifiesto, lo canonicaliza y devuelve el digest SHA-256 en hex
// junto con el XML canónico. Para un mismo contenido el digest es siempre el
// mismo, sin importar el orden de atributos o el espaciado del documento.
func (s *Sealer) Seal(data delivery.ManifestData) (string, []byte, error) {
	doc := buildManifest(data)
	raw, err := doc.WriteToBytes()
	if err != nil {
		return "", nil, fmt.Errorf("serializar manifiesto: %w", err)
	}
	canonical, err := canonicalize(raw)
	if err != nil {
		return "", nil, fmt.Errorf("canonicalizar manifiesto: %w", err)
	}
	digest := sha256.Sum256(canonical)
	return hex.EncodeToString(digest[:]), canonical, nil
}

func buildManifest(data delivery.ManifestData) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("DeliveryManifest")
	root.CreateAttr("version", "1.0")

	shipment := root.CreateElement("Shipment")
	shipment.CreateElement("ConsignmentNo").SetText(data.ConsignmentNo)
	shipment.CreateElement("BranchCode").SetText(data.BranchCode)
	shipment.CreateElement("Customer").SetText(data.CustomerName)
	shipment.CreateElement("Article").SetText(data.ArticleName)
	shipment.CreateElement("Quantity").SetText(strconv.Itoa(data.Quantity))
	shipment.CreateElement("AppliedRate").SetText(data.AppliedRate.String())

	receipt := root.CreateElement("Receipt")
	receipt.CreateElement("ReceiverName").SetText(data.ReceiverName)
	receipt.CreateElement("ReceiverDocument").SetText(data.ReceiverDocument)
	receipt.CreateElement("SignatureDigest").SetText(data.SignatureSHA256)
	receipt.CreateElement("DeliveredAt").SetText(data.DeliveredAt.UTC().Format(time.RFC3339))

	return doc
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
