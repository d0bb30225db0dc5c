package localcache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// SchemaVersion versión del esquema de la caché local. Se incrementa al
// agregar un tipo de entidad nuevo. Las migraciones son solo aditivas: abrir
// una caché vieja con un binario nuevo conserva los stores existentes; abrir
// una caché escrita por un esquema más nuevo que el binario se rechaza.
const SchemaVersion = 2

// Errores de la caché local.
var (
	ErrClosed          = errors.New("localcache: store cerrado")
	ErrSchemaTooNew    = errors.New("localcache: esquema de la caché más nuevo que el binario")
	ErrUnknownKind     = errors.New("localcache: tipo de entidad desconocido")
)

// Document es un registro en formato de wire: id más el JSON snake_case del
// registro, tal como viaja al backend remoto.
type Document struct {
	ID   string
	Data []byte
}

// Store es la caché local por tenant y por tipo de entidad, clave primaria id.
// Toda operación resuelve solo cuando la escritura quedó aplicada en el medio
// durable. Escrituras concurrentes al mismo id son last-write-wins; no hay
// locking optimista ni aislamiento entre registros.
type Store interface {
	LoadAll(ctx context.Context, kind entity.Kind) ([]Document, error)
	InsertOne(ctx context.Context, kind entity.Kind, doc Document) error
	InsertMany(ctx context.Context, kind entity.Kind, docs []Document) error
	UpdateOne(ctx context.Context, kind entity.Kind, doc Document) error
	RemoveOne(ctx context.Context, kind entity.Kind, id string) error
	Clear(ctx context.Context, kind entity.Kind) error

	// Cola de reconciliación: tipos cuyo espejo local falló tras una escritura
	// remota exitosa. El próximo sync completo la drena y los re-trae primero.
	EnqueueReconcile(ctx context.Context, kind entity.Kind) error
	DrainReconcile(ctx context.Context) ([]entity.Kind, error)

	// TenantID devuelve el tenant al que está atada esta instancia.
	TenantID() string
	Close() error
}

// Encode serializa un registro al formato de wire de la caché.
func Encode(id string, v interface{}) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, Data: data}, nil
}

// EncodeAll serializa una colección usando idOf para extraer la clave.
func EncodeAll[T any](items []T, idOf func(T) string) ([]Document, error) {
	docs := make([]Document, 0, len(items))
	for _, item := range items {
		doc, err := Encode(idOf(item), item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DecodeAll deserializa los documentos de un tipo de entidad.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := json.Unmarshal(doc.Data, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
