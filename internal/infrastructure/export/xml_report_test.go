package export_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stock-recon/internal/domain/ledger"
	"github.com/invorya/stock-recon/internal/infrastructure/export"
)

func sampleReport() *export.StockReport {
	return &export.StockReport{
		ProductID:   "p1",
		ProductName: "Café de Nariño 500g",
		GeneratedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Lines: []ledger.StockLine{
			{WarehouseID: "central", WarehouseName: "Central", Quantity: 5},
			{WarehouseID: "norte", WarehouseName: "Bodega Norte", Quantity: 7},
		},
	}
}

func TestXMLReport_EstructuraYTotales(t *testing.T) {
	out, err := export.NewXMLReportBuilder().Build(sampleReport())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out), "el reporte debe ser XML bien formado")

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "stockReport", root.Tag)
	assert.Equal(t, "p1", root.SelectAttrValue("productId", ""))
	assert.Equal(t, "12", root.SelectAttrValue("totalUnits", ""))
	assert.Equal(t, "2", root.SelectAttrValue("lineCount", ""))
	assert.Equal(t, "2026-03-10T12:00:00Z", root.SelectAttrValue("generatedAt", ""))

	lines := root.SelectElements("line")
	require.Len(t, lines, 2)
	assert.Equal(t, "central", lines[0].SelectAttrValue("warehouseId", ""))
	assert.Equal(t, "Central", lines[0].SelectElement("warehouseName").Text())
	assert.Equal(t, "5", lines[0].SelectElement("quantity").Text())
	assert.Equal(t, "norte", lines[1].SelectAttrValue("warehouseId", ""))
	assert.Equal(t, "7", lines[1].SelectElement("quantity").Text())
}

func TestXMLReport_SinLineas(t *testing.T) {
	report := &export.StockReport{
		ProductID:   "p1",
		GeneratedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	out, err := export.NewXMLReportBuilder().Build(report)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	assert.Equal(t, "0", root.SelectAttrValue("totalUnits", ""))
	assert.Empty(t, root.SelectElements("line"))
	assert.Equal(t, "", root.SelectAttrValue("productName", ""),
		"sin nombre no se emite el atributo")
}

func TestXMLReport_SinProductoEsError(t *testing.T) {
	_, err := export.NewXMLReportBuilder().Build(nil)
	assert.Error(t, err)

	_, err = export.NewXMLReportBuilder().Build(&export.StockReport{})
	assert.Error(t, err)
}

func TestPDFReport_GeneraDocumento(t *testing.T) {
	out, err := export.NewPDFReportGenerator().Generate(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "debe empezar con la cabecera PDF")
}

func TestPDFReport_SinProductoEsError(t *testing.T) {
	_, err := export.NewPDFReportGenerator().Generate(&export.StockReport{})
	assert.Error(t, err)
}
