// Package document is the in-memory structured form of a template: ordered
// body paragraphs plus tables of cells. It is the text collaborator the
// discovery engine and fill step operate on; callers load and persist it as
// JSON, whatever format the source file arrived in.
package document

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Document holds the text content of one template.
type Document struct {
	Filename   string   `json:"filename,omitempty"`
	Paragraphs []string `json:"paragraphs"`
	// Tables is table -> row -> cell text, in document order.
	Tables [][][]string `json:"tables,omitempty"`
}

// Unit is one atomic text unit (a body paragraph or a table cell) that can be
// read and replaced in place without disturbing its position.
type Unit struct {
	get func() string
	set func(string)
}

// Text returns the unit's current plain text.
func (u Unit) Text() string { return u.get() }

// SetText replaces the unit's plain text.
func (u Unit) SetText(s string) { u.set(s) }

// TextUnits returns every text unit in reading order: the main body first,
// then table cells in row-major order.
func (d *Document) TextUnits() []Unit {
	units := make([]Unit, 0, len(d.Paragraphs))
	for i := range d.Paragraphs {
		units = append(units, Unit{
			get: func() string { return d.Paragraphs[i] },
			set: func(s string) { d.Paragraphs[i] = s },
		})
	}
	for ti := range d.Tables {
		for ri := range d.Tables[ti] {
			for ci := range d.Tables[ti][ri] {
				units = append(units, Unit{
					get: func() string { return d.Tables[ti][ri][ci] },
					set: func(s string) { d.Tables[ti][ri][ci] = s },
				})
			}
		}
	}
	return units
}

// ReplaceAll substitutes each bracketed key for its value across every unit
// that contains a delimiter pair. Longer keys are applied first so an
// enumerated key like "[Price]#2" is not clobbered by its "[Price]" prefix;
// equal lengths fall back to lexicographic order so the result does not
// depend on map iteration.
func (d *Document) ReplaceAll(mapping map[string]string) {
	if len(mapping) == 0 {
		return
	}
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, u := range d.TextUnits() {
		t := u.Text()
		if !strings.Contains(t, "[") || !strings.Contains(t, "]") {
			continue
		}
		for _, k := range keys {
			t = strings.ReplaceAll(t, k, mapping[k])
		}
		u.SetText(t)
	}
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := &Document{
		Filename:   d.Filename,
		Paragraphs: append([]string(nil), d.Paragraphs...),
	}
	if d.Tables != nil {
		c.Tables = make([][][]string, len(d.Tables))
		for ti, table := range d.Tables {
			c.Tables[ti] = make([][]string, len(table))
			for ri, row := range table {
				c.Tables[ti][ri] = append([]string(nil), row...)
			}
		}
	}
	return c
}

// Parse decodes a document from its JSON form.
func Parse(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &d, nil
}

// Encode renders the document to its JSON form.
func (d *Document) Encode() ([]byte, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}
