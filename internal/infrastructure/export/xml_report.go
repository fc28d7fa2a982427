// Package export genera las representaciones descargables del estado de
// stock de un producto: XML para integraciones y PDF para impresión. Ambos
// formatos parten de la misma lectura de verificación.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/invorya/stock-recon/internal/domain/ledger"
)

// StockReport datos de entrada de ambos formatos: la proyección de líneas
// tal como la devolvió la verificación, en el orden del almacén.
type StockReport struct {
	ProductID   string
	ProductName string
	GeneratedAt time.Time
	Lines       []ledger.StockLine
}

// Total suma las cantidades de las líneas del reporte.
func (r *StockReport) Total() int64 {
	var total int64
	for _, l := range r.Lines {
		total += l.Quantity
	}
	return total
}

// XMLReportBuilder construye el XML del reporte de stock.
type XMLReportBuilder struct{}

// NewXMLReportBuilder crea el servicio.
func NewXMLReportBuilder() *XMLReportBuilder {
	return &XMLReportBuilder{}
}

// Build genera el documento:
//
//	<stockReport productId="p1" generatedAt="..." totalUnits="12" lineCount="2">
//	  <line warehouseId="central">
//	    <warehouseName>Central</warehouseName>
//	    <quantity>5</quantity>
//	  </line>
//	  ...
//	</stockReport>
func (b *XMLReportBuilder) Build(report *StockReport) ([]byte, error) {
	if report == nil || report.ProductID == "" {
		return nil, fmt.Errorf("export: reporte sin producto")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("stockReport")
	root.CreateAttr("productId", report.ProductID)
	if report.ProductName != "" {
		root.CreateAttr("productName", report.ProductName)
	}
	root.CreateAttr("generatedAt", report.GeneratedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("totalUnits", strconv.FormatInt(report.Total(), 10))
	root.CreateAttr("lineCount", strconv.Itoa(len(report.Lines)))

	for _, l := range report.Lines {
		line := root.CreateElement("line")
		line.CreateAttr("warehouseId", l.WarehouseID)
		line.CreateElement("warehouseName").SetText(l.WarehouseName)
		line.CreateElement("quantity").SetText(strconv.FormatInt(l.Quantity, 10))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
