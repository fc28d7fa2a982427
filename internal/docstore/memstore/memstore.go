// Package memstore implementa el puerto docstore en memoria, para tests y
// entornos efímeros. El orden de Query es determinista: id ascendente.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/invorya/stock-recon/internal/docstore"
)

var _ docstore.DeleteStore = (*Store)(nil)

// Store es un almacén de documentos en memoria protegido por RWMutex.
// Todo documento se clona al entrar y al salir del almacén: el llamador
// nunca comparte estado con lo persistido.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]docstore.Doc // collection -> id -> doc
}

// New construye un almacén vacío.
func New() *Store {
	return &Store{data: make(map[string]map[string]docstore.Doc)}
}

// Put inserta o reemplaza el documento identificado por (collection, id).
func (s *Store) Put(ctx context.Context, collection, id string, doc docstore.Doc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.data[collection]
	if !ok {
		col = make(map[string]docstore.Doc)
		s.data[collection] = col
	}
	col[id] = cloneDoc(doc)
	return nil
}

// Get devuelve una copia del documento, o (nil, nil) si no existe.
func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.data[collection][id]
	if !ok {
		return nil, nil
	}
	return cloneDoc(doc), nil
}

// Query devuelve los documentos de la colección que contienen el filtro,
// ordenados por id para que los tests sean deterministas.
func (s *Store) Query(ctx context.Context, collection string, filter docstore.Filter) ([]docstore.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	col := s.data[collection]
	ids := make([]string, 0, len(col))
	for id, doc := range col {
		if docstore.Matches(doc, filter) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := make([]docstore.Doc, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneDoc(col[id]))
	}
	return out, nil
}

// Delete elimina el documento si existe; borrar algo ausente no es error.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[collection], id)
	return nil
}

// Len informa cuántos documentos tiene la colección.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[collection])
}

func cloneDoc(doc docstore.Doc) docstore.Doc {
	if doc == nil {
		return nil
	}
	cp := make(docstore.Doc, len(doc))
	for k, v := range doc {
		cp[k] = v
	}
	return cp
}
