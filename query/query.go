package query

import (
	"fmt"
	"slices"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/record"
	"github.com/wippyai/ecs-layout/registry"
)

// MaxTerms is the largest number of component types one query combines,
// required and excluded together.
const MaxTerms = 32

// Source is the store a query runs against.
type Source interface {
	Entities() []ecslayout.EntityID
	Get(e ecslayout.EntityID, id ecslayout.TypeID) (*record.Record, bool)
}

// Row is one matching entity with its records in term order.
type Row struct {
	Records []*record.Record
	Entity  ecslayout.EntityID
}

// CallbackFn receives each matching row. Returning false stops iteration.
type CallbackFn func(Row) bool

// Query matches entities that have every required component type and
// none of the excluded ones. A Query is immutable.
type Query struct {
	with    []ecslayout.TypeID
	without []ecslayout.TypeID
}

// New builds a query requiring every id. More than MaxTerms ids fail with
// an unsupported arity error; zero or repeated ids are invalid.
func New(ids ...ecslayout.TypeID) (*Query, error) {
	if err := checkTerms(ids, nil); err != nil {
		return nil, err
	}
	return &Query{with: slices.Clone(ids)}, nil
}

// MustNew is New that panics on error.
func MustNew(ids ...ecslayout.TypeID) *Query {
	q, err := New(ids...)
	if err != nil {
		panic(err)
	}
	return q
}

// FromKinds builds a query over the type ids kinds are registered under
// in reg.
func FromKinds(reg registry.Registry, kinds ...*record.Kind) (*Query, error) {
	if len(kinds) > MaxTerms {
		return nil, errors.UnsupportedArity("query", len(kinds), MaxTerms)
	}
	ids := make([]ecslayout.TypeID, len(kinds))
	for i, k := range kinds {
		id, err := k.ID(reg)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return New(ids...)
}

// Without returns a copy of q that also excludes entities having any of ids.
func (q *Query) Without(ids ...ecslayout.TypeID) (*Query, error) {
	without := append(slices.Clone(q.without), ids...)
	if err := checkTerms(q.with, without); err != nil {
		return nil, err
	}
	return &Query{with: q.with, without: without}, nil
}

func checkTerms(with, without []ecslayout.TypeID) error {
	if n := len(with) + len(without); n > MaxTerms {
		return errors.UnsupportedArity("query", n, MaxTerms)
	}
	seen := make(map[ecslayout.TypeID]struct{}, len(with)+len(without))
	for _, id := range slices.Concat(with, without) {
		if id == 0 {
			return errors.InvalidInput(errors.PhaseDeclare, "query term with type id 0")
		}
		if _, dup := seen[id]; dup {
			return errors.InvalidInput(errors.PhaseDeclare, fmt.Sprintf("type id %d appears twice in query", uint64(id)))
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Terms returns the required type ids in order.
func (q *Query) Terms() []ecslayout.TypeID { return slices.Clone(q.with) }

// Excluded returns the excluded type ids.
func (q *Query) Excluded() []ecslayout.TypeID { return slices.Clone(q.without) }

func (q *Query) match(src Source, e ecslayout.EntityID) (Row, bool) {
	for _, id := range q.without {
		if _, ok := src.Get(e, id); ok {
			return Row{}, false
		}
	}
	recs := make([]*record.Record, len(q.with))
	for i, id := range q.with {
		rec, ok := src.Get(e, id)
		if !ok {
			return Row{}, false
		}
		recs[i] = rec
	}
	return Row{Entity: e, Records: recs}, true
}

// Each calls fn for every matching entity in ascending entity order.
func (q *Query) Each(src Source, fn CallbackFn) {
	for _, e := range src.Entities() {
		row, ok := q.match(src, e)
		if !ok {
			continue
		}
		if !fn(row) {
			return
		}
	}
}

// Count returns the number of matching entities.
func (q *Query) Count(src Source) int {
	n := 0
	q.Each(src, func(Row) bool {
		n++
		return true
	})
	return n
}

// First returns the first matching row.
func (q *Query) First(src Source) (Row, bool) {
	var (
		out   Row
		found bool
	)
	q.Each(src, func(r Row) bool {
		out, found = r, true
		return false
	})
	return out, found
}

// Collect returns every matching row.
func (q *Query) Collect(src Source) []Row {
	var out []Row
	q.Each(src, func(r Row) bool {
		out = append(out, r)
		return true
	})
	return out
}
