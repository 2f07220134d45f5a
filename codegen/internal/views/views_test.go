package views

import (
	"slices"
	"testing"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/manifest"
	"github.com/wippyai/ecs-layout/record"
	"github.com/wippyai/ecs-layout/schema"
	"github.com/wippyai/ecs-layout/store"
	"github.com/wippyai/ecs-layout/store/heap"
)

func schemas(t *testing.T) map[string]*schema.Schema {
	t.Helper()
	m, err := manifest.Load("components.json")
	if err != nil {
		t.Fatal(err)
	}
	ss, err := m.Schemas(0)
	if err != nil {
		t.Fatal(err)
	}
	out := make(map[string]*schema.Schema, len(ss))
	for _, s := range ss {
		out[s.Name()] = s
	}
	return out
}

func attach(t *testing.T, st *store.Store, s *schema.Schema) *record.Record {
	t.Helper()
	kind := record.FromSchema(s)
	id, err := kind.Register(st)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := st.Add(st.NewEntity(), id, kind.New())
	if err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestConstantsMatchLayout(t *testing.T) {
	ss := schemas(t)
	tests := []struct {
		name        string
		size, align uint32
		fingerprint string
	}{
		{"Position", PositionSize, PositionAlign, PositionFingerprint},
		{"Segment", SegmentSize, SegmentAlign, SegmentFingerprint},
		{"Color", ColorSize, ColorAlign, ColorFingerprint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ss[tt.name]
			if s.Size() != tt.size || s.Align() != tt.align {
				t.Errorf("size/align = %d/%d, layout has %d/%d", tt.size, tt.align, s.Size(), s.Align())
			}
			if s.FingerprintHex() != tt.fingerprint {
				t.Errorf("fingerprint = %s, layout has %s", tt.fingerprint, s.FingerprintHex())
			}
		})
	}

	seg := ss["Segment"]
	for name, off := range map[string]uint32{
		"owner":  SegmentOffsetOwner,
		"trail":  SegmentOffsetTrail,
		"label":  SegmentOffsetLabel,
		"sprite": SegmentOffsetSprite,
		"alive":  SegmentOffsetAlive,
	} {
		if f, _ := seg.Lookup(name); f.Offset != off {
			t.Errorf("Segment.%s offset = %d, layout has %d", name, off, f.Offset)
		}
	}
}

func TestViewsRoundTrip(t *testing.T) {
	st, err := heap.New(heap.WithWidth(schema.Width64))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	ss := schemas(t)

	pos := attach(t, st, ss["Position"])
	pv := NewPositionView(st, pos.Handle())
	pv.SetX(-3)
	pv.SetY(7)
	if pv.X() != -3 || pv.Y() != 7 {
		t.Errorf("position = (%d, %d)", pv.X(), pv.Y())
	}
	// the view and the reflective record see the same bytes
	if v, _ := pos.Get("x"); v != int32(-3) {
		t.Errorf("record x = %v", v)
	}

	seg := attach(t, st, ss["Segment"])
	sv := NewSegmentView(st, seg.Handle())
	trail := []ecslayout.EntityID{4, 5, 6}
	sv.SetOwner(42)
	sv.SetTrail(trail)
	sv.SetLabel("tail")
	sv.SetSprite(ecslayout.Pointer(0xdead_beef_0000_0001))
	sv.SetAlive(true)

	if sv.Owner() != 42 || sv.Label() != "tail" || !sv.Alive() {
		t.Errorf("segment = %d %q %v", sv.Owner(), sv.Label(), sv.Alive())
	}
	if sv.Sprite() != 0xdead_beef_0000_0001 {
		t.Errorf("sprite = %#x", uint64(sv.Sprite()))
	}
	if got := sv.Trail(); !slices.Equal(got, trail) {
		t.Errorf("trail = %v", got)
	}
	if v, _ := seg.Get("label"); v != "tail" {
		t.Errorf("record label = %v", v)
	}
	if sv.Handle() != seg.Handle() {
		t.Error("view handle differs from record handle")
	}

	col := attach(t, st, ss["Color"])
	cv := NewColorView(st, col.Handle())
	cv.SetRgba([]uint8{255, 128, 0, 255})
	cv.SetAlpha(0.5)
	if got := cv.Rgba(); !slices.Equal(got, []uint8{255, 128, 0, 255}) || cv.Alpha() != 0.5 {
		t.Errorf("color = %v %v", got, cv.Alpha())
	}

	// clearing payload fields through the view frees them
	sv.SetTrail(nil)
	sv.SetLabel("")
	cv.SetRgba(nil)
	if got := sv.Trail(); got != nil {
		t.Errorf("cleared trail = %v", got)
	}
	for _, r := range []*record.Record{pos, seg, col} {
		r.Release()
	}
	if stats := st.Stats(); stats.Blocks != 0 {
		t.Errorf("payloads leaked: %+v", stats)
	}
}
