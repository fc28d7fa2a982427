// Package reconcile implementa el protocolo que mantiene el agregado de un
// producto consistente con sus registros de stock por bodega. El guardado es
// secuencial y deliberadamente no atómico entre colecciones: primero el
// agregado, luego cada línea con cantidad positiva; el primer fallo aborta
// el resto sin deshacer lo ya escrito.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/domain"
	"github.com/invorya/stock-recon/internal/domain/ident"
	"github.com/invorya/stock-recon/internal/domain/ledger"
)

// TraceEntry es una entrada legible del registro de observación que el
// protocolo emite tras cada escritura exitosa. Es un canal lateral para el
// operador, no parte del contrato de correctitud.
type TraceEntry struct {
	At      time.Time
	Message string
}

// SaveReport resume un guardado exitoso.
type SaveReport struct {
	ProductID    string
	TotalStock   int64
	LinesWritten int
	Trace        []TraceEntry
}

// SaveError describe el primer fallo del protocolo de guardado. Las
// escrituras previas quedan persistidas; Trace registra cuáles alcanzaron
// a completarse antes del aborto.
type SaveError struct {
	Collection string
	DocID      string
	Cause      error
	Trace      []TraceEntry
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("guardado abortado en %s/%s: %v", e.Collection, e.DocID, e.Cause)
}

func (e *SaveError) Unwrap() error { return e.Cause }

// Option configura el servicio de reconciliación.
type Option func(*Service)

// WithClock fija el proveedor de tiempo para timestamps y traza.
func WithClock(fn func() time.Time) Option {
	return func(s *Service) { s.nowFn = fn }
}

// Service orquesta el guardado del libro de stock contra el almacén de
// documentos. El almacén se inyecta por constructor, nunca se toma de un
// global, para que los tests sustituyan uno en memoria.
type Service struct {
	store     docstore.Store
	sanitizer *ident.Sanitizer
	log       zerolog.Logger
	nowFn     func() time.Time
}

// NewService construye el servicio de reconciliación.
func NewService(store docstore.Store, sanitizer *ident.Sanitizer, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		sanitizer: sanitizer,
		log:       log,
		nowFn:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save ejecuta el protocolo secuencial:
//  1. calcula el total del libro,
//  2. escribe el agregado products/{productId} con totalStock como snapshot,
//  3. escribe cada línea con cantidad positiva como
//     warehouseStocks/{productId_bodegaSaneada}, en orden del libro.
//
// Las líneas en cero no se escriben y un registro positivo previo de una
// bodega que quedó en cero NO se borra. Cada put es un upsert por id
// determinista, así que repetir Save con el mismo libro es idempotente.
// El primer fallo devuelve *SaveError con la causa y la traza parcial;
// no hay rollback ni reintento.
func (s *Service) Save(ctx context.Context, l *ledger.Ledger) (*SaveReport, error) {
	if l == nil || l.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}

	total := l.TotalStock()
	trace := make([]TraceEntry, 0, len(l.Lines())+1)

	productDoc, err := s.buildProductDoc(ctx, l, total)
	if err != nil {
		return nil, &SaveError{Collection: docstore.CollectionProducts, DocID: l.ProductID, Cause: err, Trace: trace}
	}
	if err := s.store.Put(ctx, docstore.CollectionProducts, l.ProductID, productDoc); err != nil {
		return nil, &SaveError{Collection: docstore.CollectionProducts, DocID: l.ProductID, Cause: err, Trace: trace}
	}
	s.log.Debug().Str("productId", l.ProductID).Int64("totalStock", total).Msg("agregado de producto guardado")
	trace = append(trace, s.entry("producto %s guardado (totalStock=%d)", l.ProductID, total))

	written := 0
	for _, line := range l.Lines() {
		if line.Quantity <= 0 {
			// Las líneas en cero no se escriben; un registro positivo
			// previo de esa bodega queda tal cual.
			continue
		}
		compositeID := l.ProductID + "_" + s.sanitizer.Sanitize(line.WarehouseID)
		now := s.nowFn().UTC()
		doc := docstore.Doc{
			"productId":     l.ProductID,
			"warehouseId":   line.WarehouseID,
			"warehouseName": line.WarehouseName,
			"quantity":      line.Quantity,
			"createdAt":     now.Format(time.RFC3339),
			"updatedAt":     now.Format(time.RFC3339),
		}
		if err := s.store.Put(ctx, docstore.CollectionWarehouseStocks, compositeID, doc); err != nil {
			s.log.Error().Err(err).Str("docId", compositeID).Msg("guardado de línea de stock fallido, se aborta la secuencia")
			return nil, &SaveError{Collection: docstore.CollectionWarehouseStocks, DocID: compositeID, Cause: err, Trace: trace}
		}
		s.log.Debug().Str("docId", compositeID).Int64("quantity", line.Quantity).Msg("línea de stock guardada")
		trace = append(trace, s.entry("stock %s guardado (bodega %s, cantidad %d)", compositeID, line.WarehouseID, line.Quantity))
		written++
	}

	return &SaveReport{
		ProductID:    l.ProductID,
		TotalStock:   total,
		LinesWritten: written,
		Trace:        trace,
	}, nil
}

// buildProductDoc mezcla el documento existente del producto (si lo hay) con
// el snapshot nuevo, conservando los campos del catálogo (sku, precio,
// categoría) y el createdAt original.
func (s *Service) buildProductDoc(ctx context.Context, l *ledger.Ledger, total int64) (docstore.Doc, error) {
	existing, err := s.store.Get(ctx, docstore.CollectionProducts, l.ProductID)
	if err != nil {
		return nil, err
	}
	doc := make(docstore.Doc, len(existing)+4)
	for k, v := range existing {
		doc[k] = v
	}
	if l.ProductName != "" {
		doc["name"] = l.ProductName
	}
	doc["totalStock"] = total
	now := s.nowFn().UTC().Format(time.RFC3339)
	if _, ok := doc["createdAt"]; !ok {
		doc["createdAt"] = now
	}
	doc["updatedAt"] = now
	return doc, nil
}

func (s *Service) entry(format string, args ...any) TraceEntry {
	return TraceEntry{At: s.nowFn().UTC(), Message: fmt.Sprintf(format, args...)}
}
