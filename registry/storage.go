package registry

import (
	stderrors "errors"
	"sync"

	"github.com/goccy/go-json"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/schema"
)

// ErrNoSchemaFound is returned by SchemaStorage when nothing is stored
// under a name.
var ErrNoSchemaFound = stderrors.New("no schema found")

// SchemaStorage persists registration metadata across processes.
//
// AddSchema stores data only when nothing is stored under name yet and
// reports whether it did. An entry, once stored, is never replaced.
type SchemaStorage interface {
	GetSchema(name string) ([]byte, error)
	AddSchema(name string, data []byte) (bool, error)
}

// StoredSchema is the persisted form of one registration.
type StoredSchema struct {
	Name   string        `json:"name"`
	Fields []StoredField `json:"fields"`
}

type StoredField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// EncodeSchema renders registration metadata as JSON.
func EncodeSchema(name string, names []string, tags []schema.Tag) ([]byte, error) {
	s := StoredSchema{Name: name, Fields: make([]StoredField, len(names))}
	for i, n := range names {
		s.Fields[i] = StoredField{Name: n, Type: tags[i].String()}
	}
	return json.Marshal(s)
}

// DecodeSchema parses metadata written by EncodeSchema.
func DecodeSchema(data []byte) (string, []string, []schema.Tag, error) {
	var s StoredSchema
	if err := json.Unmarshal(data, &s); err != nil {
		return "", nil, nil, errors.Wrap(errors.PhaseRegister, errors.KindInvalidData, err, "decode stored schema")
	}

	names := make([]string, len(s.Fields))
	tags := make([]schema.Tag, len(s.Fields))
	for i, f := range s.Fields {
		t, ok := schema.ParseTag(f.Type)
		if !ok {
			return "", nil, nil, errors.InvalidData(errors.PhaseRegister, []string{s.Name, f.Name},
				"unknown type tag "+f.Type)
		}
		names[i] = f.Name
		tags[i] = t
	}
	return s.Name, names, tags, nil
}

// MemoryStorage is a SchemaStorage backed by a map.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) GetSchema(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.data[name]
	if !ok {
		return nil, ErrNoSchemaFound
	}
	return d, nil
}

func (m *MemoryStorage) AddSchema(name string, data []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[name]; ok {
		return false, nil
	}
	m.data[name] = data
	return true, nil
}
