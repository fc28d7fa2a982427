package memstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/docstore/memstore"
)

func TestPutGet_RoundTrip(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	err := s.Put(ctx, "products", "p1", docstore.Doc{"name": "Tornillos", "totalStock": int64(5)})
	require.NoError(t, err)

	doc, err := s.Get(ctx, "products", "p1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Tornillos", doc["name"])
	assert.Equal(t, int64(5), doc["totalStock"])
}

func TestGet_InexistenteDevuelveNilNil(t *testing.T) {
	s := memstore.New()

	doc, err := s.Get(context.Background(), "products", "no-existe")

	assert.NoError(t, err, "un documento ausente no es un error del almacén")
	assert.Nil(t, doc)
}

func TestPut_SobrescribePorID(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "products", "p1", docstore.Doc{"name": "v1"}))
	require.NoError(t, s.Put(ctx, "products", "p1", docstore.Doc{"name": "v2"}))

	assert.Equal(t, 1, s.Len("products"), "put por el mismo id no debe duplicar")
	doc, err := s.Get(ctx, "products", "p1")
	require.NoError(t, err)
	assert.Equal(t, "v2", doc["name"])
}

// TestPutGet_ClonaDocumentos verifica que el almacén no comparte estado con
// el llamador: mutar el mapa original o el devuelto no toca lo persistido.
func TestPutGet_ClonaDocumentos(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	original := docstore.Doc{"name": "intacto"}
	require.NoError(t, s.Put(ctx, "products", "p1", original))
	original["name"] = "mutado por el llamador"

	doc, err := s.Get(ctx, "products", "p1")
	require.NoError(t, err)
	assert.Equal(t, "intacto", doc["name"])

	doc["name"] = "mutado tras leer"
	again, err := s.Get(ctx, "products", "p1")
	require.NoError(t, err)
	assert.Equal(t, "intacto", again["name"])
}

func TestQuery_FiltraPorIgualdad(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "warehouseStocks", "p1_w1", docstore.Doc{"productId": "p1", "quantity": int64(5)}))
	require.NoError(t, s.Put(ctx, "warehouseStocks", "p1_w2", docstore.Doc{"productId": "p1", "quantity": int64(3)}))
	require.NoError(t, s.Put(ctx, "warehouseStocks", "p2_w1", docstore.Doc{"productId": "p2", "quantity": int64(9)}))

	docs, err := s.Query(ctx, "warehouseStocks", docstore.Filter{"productId": "p1"})

	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		assert.Equal(t, "p1", d["productId"])
	}
}

func TestQuery_OrdenDeterministaPorID(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "warehouses", "sur", docstore.Doc{"name": "Sur"}))
	require.NoError(t, s.Put(ctx, "warehouses", "central", docstore.Doc{"name": "Central"}))
	require.NoError(t, s.Put(ctx, "warehouses", "norte", docstore.Doc{"name": "Norte"}))

	docs, err := s.Query(ctx, "warehouses", nil)

	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "Central", docs[0]["name"])
	assert.Equal(t, "Norte", docs[1]["name"])
	assert.Equal(t, "Sur", docs[2]["name"])
}

func TestQuery_ColeccionVacia(t *testing.T) {
	s := memstore.New()

	docs, err := s.Query(context.Background(), "warehouseStocks", docstore.Filter{"productId": "p1"})

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestOperaciones_ContextoCancelado(t *testing.T) {
	s := memstore.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Put(ctx, "products", "p1", docstore.Doc{}))
	_, err := s.Get(ctx, "products", "p1")
	assert.Error(t, err)
	_, err = s.Query(ctx, "products", nil)
	assert.Error(t, err)
}
