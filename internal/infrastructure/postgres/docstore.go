package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invorya/stock-recon/internal/docstore"
)

var _ docstore.DeleteStore = (*Store)(nil)

// Store implementación del almacén de documentos sobre PostgreSQL: una
// única tabla documents (collection, id, doc JSONB). Los filtros de Query
// se traducen al operador de contención @> sobre el JSONB.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el adaptador de persistencia de documentos.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Put inserta o reemplaza el documento completo (upsert por PK).
func (s *Store) Put(ctx context.Context, collection, id string, doc docstore.Doc) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal doc: %w", err)
	}
	query := `
		INSERT INTO documents (collection, id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (collection, id)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
	if _, err := s.pool.Exec(ctx, query, collection, id, payload); err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	return nil
}

// Get devuelve el documento o (nil, nil) si no existe.
func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Doc, error) {
	query := `SELECT doc FROM documents WHERE collection = $1 AND id = $2`
	var payload []byte
	err := s.pool.QueryRow(ctx, query, collection, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return decodeDoc(payload)
}

// Query devuelve los documentos de la colección que contienen el filtro,
// en orden ascendente de id (el mismo orden que el almacén en memoria).
func (s *Store) Query(ctx context.Context, collection string, filter docstore.Filter) ([]docstore.Doc, error) {
	query := `SELECT doc FROM documents WHERE collection = $1 ORDER BY id`
	args := []any{collection}
	if len(filter) > 0 {
		payload, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("marshal filter: %w", err)
		}
		query = `SELECT doc FROM documents WHERE collection = $1 AND doc @> $2::jsonb ORDER BY id`
		args = append(args, payload)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()
	var list []docstore.Doc
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc, err := decodeDoc(payload)
		if err != nil {
			return nil, err
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// Delete elimina el documento. Borrar un id inexistente no es error.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// decodeDoc deserializa con UseNumber para que los números lleguen como
// json.Number y no pierdan precisión en float64.
func decodeDoc(payload []byte) (docstore.Doc, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var doc docstore.Doc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("unmarshal doc: %w", err)
	}
	return doc, nil
}
