package query

import (
	stderrors "errors"
	"testing"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/record"
	"github.com/wippyai/ecs-layout/schema"
	"github.com/wippyai/ecs-layout/store"
	"github.com/wippyai/ecs-layout/store/heap"
)

type Position struct {
	X int32 `ecs:"x"`
	Y int32 `ecs:"y"`
}

type Velocity struct {
	DX int32 `ecs:"dx"`
	DY int32 `ecs:"dy"`
}

type Frozen struct {
	Ticks uint16 `ecs:"ticks"`
}

type world struct {
	st                  *store.Store
	pos, vel, frozen    *record.Kind
	posID, velID, frzID ecslayout.TypeID
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{st: heap.MustNew(heap.WithWidth(schema.Width64))}
	w.pos = record.MustDeclare[Position](record.WithWidth(schema.Width64))
	w.vel = record.MustDeclare[Velocity](record.WithWidth(schema.Width64))
	w.frozen = record.MustDeclare[Frozen](record.WithWidth(schema.Width64))

	var err error
	if w.posID, err = w.pos.Register(w.st); err != nil {
		t.Fatal(err)
	}
	if w.velID, err = w.vel.Register(w.st); err != nil {
		t.Fatal(err)
	}
	if w.frzID, err = w.frozen.Register(w.st); err != nil {
		t.Fatal(err)
	}
	return w
}

func (w *world) spawn(t *testing.T, kinds ...*record.Kind) ecslayout.EntityID {
	t.Helper()
	e := w.st.NewEntity()
	for _, k := range kinds {
		id, err := k.ID(w.st)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.st.Add(e, id, k.New()); err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func TestNew(t *testing.T) {
	ids := make([]ecslayout.TypeID, MaxTerms+1)
	for i := range ids {
		ids[i] = ecslayout.TypeID(i + 1)
	}

	tests := []struct {
		name string
		ids  []ecslayout.TypeID
		want *errors.Error
	}{
		{"max terms", ids[:MaxTerms], nil},
		{"too many terms", ids, errors.ErrUnsupportedArity},
		{"zero id", []ecslayout.TypeID{1, 0}, &errors.Error{Kind: errors.KindInvalidInput}},
		{"duplicate id", []ecslayout.TypeID{4, 4}, &errors.Error{Kind: errors.KindInvalidInput}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New(tt.ids...)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(q.Terms()) != len(tt.ids) {
					t.Errorf("terms: got %d", len(q.Terms()))
				}
				return
			}
			if !stderrors.Is(err, tt.want) {
				t.Errorf("got %v, want %s", err, tt.want.Kind)
			}
		})
	}
}

func TestWithoutCountsTowardArity(t *testing.T) {
	with := make([]ecslayout.TypeID, MaxTerms)
	for i := range with {
		with[i] = ecslayout.TypeID(i + 1)
	}
	q := MustNew(with...)
	if _, err := q.Without(100); !stderrors.Is(err, errors.ErrUnsupportedArity) {
		t.Errorf("got %v", err)
	}
	if _, err := MustNew(1).Without(1); err == nil {
		t.Error("a type cannot be both required and excluded")
	}
}

func TestEach(t *testing.T) {
	w := newWorld(t)
	moving := w.spawn(t, w.pos, w.vel)
	w.spawn(t, w.pos)
	stuck := w.spawn(t, w.pos, w.vel, w.frozen)
	w.spawn(t, w.vel)

	q := MustNew(w.posID, w.velID)
	rows := q.Collect(w.st)
	if len(rows) != 2 || rows[0].Entity != moving || rows[1].Entity != stuck {
		t.Fatalf("rows: %+v", rows)
	}
	for _, r := range rows {
		if r.Records[0].Type() != w.posID || r.Records[1].Type() != w.velID {
			t.Error("records not in term order")
		}
	}

	free, err := q.Without(w.frzID)
	if err != nil {
		t.Fatal(err)
	}
	if n := free.Count(w.st); n != 1 {
		t.Errorf("without frozen: got %d", n)
	}
	if got := free.Excluded(); len(got) != 1 || got[0] != w.frzID {
		t.Errorf("excluded: %v", got)
	}
	if len(q.Excluded()) != 0 {
		t.Error("Without modified the original query")
	}

	// systems write through the rows
	q.Each(w.st, func(r Row) bool {
		dx := int32(r.Entity) * 2
		_ = r.Records[1].Set("dx", dx)
		x, _ := r.Records[0].Get("x")
		_ = r.Records[0].Set("x", x.(int32)+dx)
		return true
	})
	rec, _ := w.st.Get(stuck, w.posID)
	if x, _ := rec.Get("x"); x != int32(stuck)*2 {
		t.Errorf("x after system: got %v", x)
	}
}

func TestFirstStops(t *testing.T) {
	w := newWorld(t)
	first := w.spawn(t, w.pos)
	w.spawn(t, w.pos)

	q := MustNew(w.posID)
	r, ok := q.First(w.st)
	if !ok || r.Entity != first {
		t.Errorf("first: got %d, %v", r.Entity, ok)
	}

	calls := 0
	q.Each(w.st, func(Row) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Errorf("callback returning false should stop iteration, got %d calls", calls)
	}

	if _, ok := MustNew(w.frzID).First(w.st); ok {
		t.Error("no entity has frozen")
	}
}

func TestFromKinds(t *testing.T) {
	w := newWorld(t)
	q, err := FromKinds(w.st, w.pos, w.vel)
	if err != nil {
		t.Fatal(err)
	}
	if terms := q.Terms(); terms[0] != w.posID || terms[1] != w.velID {
		t.Errorf("terms: %v", terms)
	}

	type Unregistered struct{ A uint8 }
	k := record.MustDeclare[Unregistered]()
	if _, err := FromKinds(w.st, k); !stderrors.Is(err, errors.ErrNotFound) {
		t.Errorf("unregistered kind: got %v", err)
	}

	kinds := make([]*record.Kind, MaxTerms+1)
	for i := range kinds {
		kinds[i] = w.pos
	}
	if _, err := FromKinds(w.st, kinds...); !stderrors.Is(err, errors.ErrUnsupportedArity) {
		t.Errorf("too many kinds: got %v", err)
	}
}
