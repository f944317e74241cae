// Package dxf reads the model-space geometry of ASCII DXF drawings on top of
// github.com/yofu/dxf.
//
// The ENTITIES section is split into records first: model-space records of
// the types the library understands are parsed by it, ELLIPSE, SPLINE and
// MTEXT are read here, and everything else is counted in Drawing.Skipped,
// as are paper-space entities. The HEADER only contributes $ACADVER.
package dxf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

var binarySentinel = []byte("AutoCAD Binary DXF")

// Drawing is the parsed content of a DXF file.
type Drawing struct {
	Version  string
	Entities []Entity
	Skipped  map[string]int
}

// Layers returns the sorted set of layer names used by the entities.
func (d *Drawing) Layers() []string {
	seen := make(map[string]struct{})
	for _, e := range d.Entities {
		seen[e.Layer()] = struct{}{}
	}
	layers := make([]string, 0, len(seen))
	for name := range seen {
		layers = append(layers, name)
	}
	sort.Strings(layers)
	return layers
}

// Counts returns the number of entities per DXF type.
func (d *Drawing) Counts() map[string]int {
	counts := make(map[string]int)
	for _, e := range d.Entities {
		counts[e.Type()]++
	}
	return counts
}

// ReadFile opens and parses the DXF file at path.
func ReadFile(path string) (*Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open drawing: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses an ASCII DXF stream. A missing EOF marker is tolerated.
func Read(r io.Reader) (*Drawing, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(binarySentinel)); bytes.Equal(head, binarySentinel) {
		return nil, ErrBinaryDXF
	}

	s := newScanner(br)
	d := &Drawing{Skipped: make(map[string]int)}

	for {
		g, err := s.next()
		if errors.Is(err, io.EOF) {
			return d, nil
		}
		if err != nil {
			return nil, err
		}
		if g.code != 0 {
			continue
		}

		switch g.value {
		case "EOF":
			return d, nil
		case "SECTION":
			name, err := s.next()
			if err != nil {
				return nil, sectionErr(err)
			}
			if name.code != 2 {
				s.unread(name)
				continue
			}
			switch name.value {
			case "HEADER":
				err = readHeader(s, d)
			case "ENTITIES":
				err = readEntities(s, d)
			default:
				err = skipSection(s)
			}
			if err != nil {
				return nil, fmt.Errorf("section %s: %w", name.value, err)
			}
		}
	}
}

func sectionErr(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("section name: %w", ErrUnexpectedEOF)
	}
	return err
}

func readHeader(s *scanner, d *Drawing) error {
	var variable string
	for {
		g, err := s.next()
		if err != nil {
			return sectionErr(err)
		}
		switch {
		case g.code == 0 && g.value == "ENDSEC":
			return nil
		case g.code == 9:
			variable = g.value
		case variable == "$ACADVER" && g.code == 1:
			d.Version = g.value
		}
	}
}

func skipSection(s *scanner) error {
	for {
		g, err := s.next()
		if err != nil {
			return sectionErr(err)
		}
		if g.code == 0 && g.value == "ENDSEC" {
			return nil
		}
	}
}

// record is an entity's type plus every group up to the next code 0.
type record struct {
	kind   string
	groups []group
}

func readRecord(s *scanner, kind string) (*record, error) {
	rec := &record{kind: kind}
	for {
		g, err := s.next()
		if err != nil {
			return nil, sectionErr(err)
		}
		if g.code == 0 {
			s.unread(g)
			return rec, nil
		}
		rec.groups = append(rec.groups, g)
	}
}

func (r *record) base() (Base, error) {
	var b Base
	for _, g := range r.groups {
		switch g.code {
		case 5:
			b.Handle = g.value
		case 8:
			b.LayerName = g.value
		case 62:
			if err := g.int(&b.Color); err != nil {
				return b, err
			}
		case 67:
			b.paperSpace = g.value == "1"
		}
	}
	return b, nil
}

func readEntities(s *scanner, d *Drawing) error {
	var (
		lib      libraryDoc
		order    []*pending
		open     *pending
		dropping bool // inside a paper-space POLYLINE
	)
	closePolyline := func() {
		if open != nil {
			lib.pair(0, "SEQEND")
			open = nil
		}
	}

	for {
		g, err := s.next()
		if err != nil {
			return sectionErr(err)
		}
		if g.code != 0 {
			continue
		}
		if g.value == "ENDSEC" {
			closePolyline()
			break
		}

		rec, err := readRecord(s, g.value)
		if err != nil {
			return err
		}
		switch rec.kind {
		case "VERTEX":
			switch {
			case open != nil:
				if err := rec.validate(); err != nil {
					return fmt.Errorf("%s: %w", rec.kind, err)
				}
				open.vertices = append(open.vertices, rec)
				lib.write(rec)
			case !dropping:
				d.Skipped[rec.kind]++
			}
			continue
		case "SEQEND":
			closePolyline()
			dropping = false
			continue
		}

		closePolyline()
		dropping = false

		base, err := rec.base()
		if err != nil {
			return fmt.Errorf("%s: %w", rec.kind, err)
		}
		if base.paperSpace {
			d.Skipped["PAPERSPACE"]++
			dropping = rec.kind == "POLYLINE"
			continue
		}

		switch {
		case libraryKinds[rec.kind]:
			if err := rec.validate(); err != nil {
				return fmt.Errorf("%s: %w", rec.kind, err)
			}
			p := &pending{kind: rec.kind, rec: rec}
			lib.add(p)
			order = append(order, p)
			if rec.kind == "POLYLINE" {
				open = p
			}
		case builders[rec.kind] != nil:
			e, err := builders[rec.kind](rec)
			if err != nil {
				return fmt.Errorf("%s: %w", rec.kind, err)
			}
			order = append(order, &pending{kind: rec.kind, entity: e})
		default:
			d.Skipped[rec.kind]++
		}
	}

	if err := lib.resolve(); err != nil {
		return err
	}
	for _, p := range order {
		d.Entities = append(d.Entities, p.entity)
	}
	return nil
}
