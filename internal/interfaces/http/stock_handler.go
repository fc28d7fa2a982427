package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stock-recon/internal/application/dto"
	"github.com/invorya/stock-recon/internal/application/reconcile"
	"github.com/invorya/stock-recon/internal/application/usecase"
	"github.com/invorya/stock-recon/internal/domain/ledger"
	"github.com/invorya/stock-recon/internal/infrastructure/export"
)

// StockHandler maneja el guardado y la verificación del stock por bodega de
// un producto. El guardado arma el libro con TODAS las bodegas registradas y
// superpone las cantidades del cuerpo; una bodega no registrada se rechaza
// antes de escribir nada.
type StockHandler struct {
	service    *reconcile.Service
	reader     *reconcile.Reader
	warehouses *usecase.WarehouseUseCase
	products   *usecase.ProductUseCase
	xmlBuilder *export.XMLReportBuilder
	pdfGen     *export.PDFReportGenerator
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(
	service *reconcile.Service,
	reader *reconcile.Reader,
	warehouses *usecase.WarehouseUseCase,
	products *usecase.ProductUseCase,
) *StockHandler {
	return &StockHandler{
		service:    service,
		reader:     reader,
		warehouses: warehouses,
		products:   products,
		xmlBuilder: export.NewXMLReportBuilder(),
		pdfGen:     export.NewPDFReportGenerator(),
	}
}

// Save godoc
// @Summary      Guardar stock por bodega
// @Description  Escribe el agregado del producto y luego una línea por bodega con cantidad positiva, en orden. El protocolo es secuencial y sin rollback: si una escritura falla, las anteriores quedan persistidas y la respuesta 500 incluye la traza parcial.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del producto"
// @Param        body  body  dto.SaveStockRequest  true  "líneas de stock por bodega"
// @Success      200   {object}  dto.SaveReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [put]
func (h *StockHandler) Save(c *fiber.Ctx) error {
	productID := c.Params("id")
	var in dto.SaveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Lines == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lines es requerido"})
	}

	// El nombre del producto viaja en el agregado si el catálogo lo conoce;
	// un producto aún no catalogado también se puede guardar (el protocolo
	// crea el documento).
	productName := ""
	product, err := h.products.GetByID(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	if product != nil {
		productName = product.Name
	}

	registered, err := h.warehouses.GetAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	l := ledger.New(productID, productName, registered)

	for _, line := range in.Lines {
		if line.WarehouseID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido en cada línea"})
		}
		if _, ok := l.Quantity(line.WarehouseID); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "UNKNOWN_WAREHOUSE",
				Message: fmt.Sprintf("la bodega %q no está registrada", line.WarehouseID),
			})
		}
		l.SetQuantity(line.WarehouseID, line.Quantity)
	}

	report, err := h.service.Save(c.Context(), l)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SaveReportResponse{
		ProductID:    report.ProductID,
		TotalStock:   report.TotalStock,
		LinesWritten: report.LinesWritten,
		Trace:        toTraceResponse(report.Trace),
	})
}

// Read godoc
// @Summary      Verificar stock por bodega
// @Description  Lee los registros persistidos del producto. live_total suma esas líneas; snapshot_total es el totalStock del documento del producto y puede quedar desfasado tras un guardado abortado.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.StockReadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *StockHandler) Read(c *fiber.Ctx) error {
	productID := c.Params("id")
	lines, err := h.reader.Verify(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}

	var snapshot int64
	product, err := h.products.GetByID(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	if product != nil {
		snapshot = product.TotalStock
	}

	out := dto.StockReadResponse{
		ProductID:     productID,
		Lines:         make([]dto.StockLineResponse, 0, len(lines)),
		SnapshotTotal: snapshot,
	}
	for _, line := range lines {
		out.Lines = append(out.Lines, dto.StockLineResponse{
			WarehouseID:   line.WarehouseID,
			WarehouseName: line.WarehouseName,
			Quantity:      line.Quantity,
		})
		out.LiveTotal += line.Quantity
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Descargar reporte de stock
// @Tags         stock
// @Security     Bearer
// @Produce      application/xml
// @Produce      application/pdf
// @Param        id      path   string  true   "ID del producto"
// @Param        format  query  string  false  "xml (default) o pdf"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	productID := c.Params("id")
	format := c.Query("format", "xml")
	if format != "xml" && format != "pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser xml o pdf"})
	}

	lines, err := h.reader.Verify(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	productName := ""
	product, err := h.products.GetByID(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	if product != nil {
		productName = product.Name
	}

	report := &export.StockReport{
		ProductID:   productID,
		ProductName: productName,
		GeneratedAt: time.Now().UTC(),
		Lines:       lines,
	}

	var data []byte
	contentType := "application/xml"
	if format == "pdf" {
		contentType = "application/pdf"
		data, err = h.pdfGen.Generate(report)
	} else {
		data, err = h.xmlBuilder.Build(report)
	}
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "stock-"+productID+"."+format))
	return c.Send(data)
}
