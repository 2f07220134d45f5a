package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/wippyai/ecs-layout/manifest"
	"github.com/wippyai/ecs-layout/schema"
)

type fieldPlan struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Offset uint32 `json:"offset"`
	Size   uint32 `json:"size"`
	Align  uint32 `json:"align"`
}

type componentPlan struct {
	Name        string      `json:"name"`
	Width       uint32      `json:"width"`
	Size        uint32      `json:"size"`
	Align       uint32      `json:"align"`
	Fingerprint string      `json:"fingerprint"`
	Fields      []fieldPlan `json:"fields"`
}

func planOf(s *schema.Schema) componentPlan {
	p := componentPlan{
		Name:        s.Name(),
		Width:       uint32(s.Width()),
		Size:        s.Size(),
		Align:       s.Align(),
		Fingerprint: s.FingerprintHex(),
		Fields:      make([]fieldPlan, 0, s.Len()),
	}
	for _, f := range s.Fields() {
		p.Fields = append(p.Fields, fieldPlan{
			Name:   f.Name,
			Type:   manifest.TypeName(f),
			Offset: f.Offset,
			Size:   f.Size,
			Align:  f.Align,
		})
	}
	return p
}

// planAll plans every manifest component under each width.
func planAll(m *manifest.Manifest, widths []schema.Width) ([]componentPlan, error) {
	var plans []componentPlan
	for _, w := range widths {
		ss, err := m.Schemas(w)
		if err != nil {
			return nil, err
		}
		for _, s := range ss {
			plans = append(plans, planOf(s))
		}
	}
	return plans, nil
}

func writeJSON(w io.Writer, plans []componentPlan) error {
	data, err := json.MarshalIndent(plans, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// writeText prints one block per component. Boxed tables are only drawn
// for terminals.
func writeText(w io.Writer, plans []componentPlan, boxed bool) error {
	for i, p := range plans {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (width %d, size %d, align %d)\n", p.Name, p.Width, p.Size, p.Align)
		fmt.Fprintf(w, "fingerprint %s\n", p.Fingerprint)

		if boxed {
			fmt.Fprintln(w, fieldTable(p).String())
			continue
		}
		for _, f := range p.Fields {
			fmt.Fprintf(w, "  %-16s %-14s offset %-4d size %-2d align %d\n", f.Name, f.Type, f.Offset, f.Size, f.Align)
		}
	}
	return nil
}

func fieldTable(p componentPlan) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(helpStyle).
		Headers("FIELD", "TYPE", "OFFSET", "SIZE", "ALIGN")
	for _, f := range p.Fields {
		t.Row(f.Name, f.Type,
			strconv.FormatUint(uint64(f.Offset), 10),
			strconv.FormatUint(uint64(f.Size), 10),
			strconv.FormatUint(uint64(f.Align), 10))
	}
	return t
}

// parseWidths reads the -width flag: "4", "8", "both", or "" for the
// manifest's own width.
func parseWidths(s string) ([]schema.Width, error) {
	switch s {
	case "":
		return []schema.Width{0}, nil
	case "4", "32":
		return []schema.Width{schema.Width32}, nil
	case "8", "64":
		return []schema.Width{schema.Width64}, nil
	case "both":
		return []schema.Width{schema.Width32, schema.Width64}, nil
	default:
		return nil, fmt.Errorf("invalid width %q: want 4, 8 or both", s)
	}
}
