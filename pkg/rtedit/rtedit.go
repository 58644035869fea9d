// Package rtedit rewrites the geometry of .rt scene files line by line.
// Lines that are not touched by an edit are copied through unchanged.
package rtedit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/loaders"
)

// positioned lists how many leading vector fields a Translate moves per element
var positioned = map[string]int{
	"C":  1,
	"L":  1,
	"sp": 1,
	"pl": 1,
	"cy": 1,
	"ep": 1,
	"hp": 1,
	"tr": 3,
}

// editor rewrites the vector fields of element lines and bounds comments
type editor struct {
	fields  func(id string) int       // Number of leading vectors to map for an element
	point   func(core.Vec3) core.Vec3 // Mapping applied to each vector and bounds comment
	recount bool                      // Drop bounds comments and append fresh ones from edited triangles

	minSeen  core.Vec3
	maxSeen  core.Vec3
	vertices int
}

// Translate moves every positioned element of the scene by offset: the first
// vector of C, L, sp, pl, cy, ep, hp and all three vertices of tr.
func Translate(r io.Reader, w io.Writer, offset core.Vec3) error {
	ed := &editor{
		fields: func(id string) int { return positioned[id] },
		point:  func(v core.Vec3) core.Vec3 { return v.Add(offset) },
	}
	return ed.run(r, w)
}

// Rotate turns triangle vertices about the origin by the given angles in
// degrees, applied around X, then Y, then Z. Existing bounds comments are
// replaced by bounds of the rotated triangles.
func Rotate(r io.Reader, w io.Writer, degrees core.Vec3) error {
	radians := core.NewVec3(core.DegToRad(degrees.X), core.DegToRad(degrees.Y), core.DegToRad(degrees.Z))
	ed := &editor{
		fields:  trianglesOnly,
		point:   func(v core.Vec3) core.Vec3 { return v.Rotate(radians) },
		recount: true,
	}
	return ed.run(r, w)
}

// Scale multiplies triangle vertices and bounds comments by factor
func Scale(r io.Reader, w io.Writer, factor float64) error {
	if factor <= 0 {
		return fmt.Errorf("scale factor must be positive, got %g", factor)
	}
	ed := &editor{
		fields: trianglesOnly,
		point:  func(v core.Vec3) core.Vec3 { return v.Multiply(factor) },
	}
	return ed.run(r, w)
}

func trianglesOnly(id string) int {
	if id == "tr" {
		return 3
	}
	return 0
}

func (ed *editor) run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	line := 0

	for scanner.Scan() {
		line++
		out, keep, err := ed.editLine(scanner.Text())
		if err != nil {
			return &loaders.ParseError{Line: line, Msg: "cannot edit line", Err: err}
		}
		if keep {
			fmt.Fprintln(bw, out)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	if ed.recount && ed.vertices > 0 {
		fmt.Fprintf(bw, "%s %s\n", loaders.BoundsMinTag, loaders.FormatVec3(ed.minSeen))
		fmt.Fprintf(bw, "%s %s\n", loaders.BoundsMaxTag, loaders.FormatVec3(ed.maxSeen))
	}
	return bw.Flush()
}

// editLine returns the rewritten line and whether it should be written at all
func (ed *editor) editLine(text string) (string, bool, error) {
	trimmed := strings.TrimSpace(text)
	for _, tag := range []string{loaders.BoundsMinTag, loaders.BoundsMaxTag} {
		if !strings.HasPrefix(trimmed, tag) {
			continue
		}
		if ed.recount {
			return "", false, nil
		}
		v, err := parseVec3(strings.TrimSpace(trimmed[len(tag):]))
		if err != nil {
			return "", false, fmt.Errorf("bounds: %w", err)
		}
		return tag + " " + loaders.FormatVec3(ed.point(v)), true, nil
	}

	body, comment := text, ""
	if i := strings.IndexByte(text, '#'); i >= 0 {
		body, comment = text[:i], text[i:]
	}
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return text, true, nil
	}
	n := ed.fields(fields[0])
	if n == 0 {
		return text, true, nil
	}
	if len(fields) < n+1 {
		return "", false, fmt.Errorf("%s: expected %d vectors", fields[0], n)
	}

	for i := 1; i <= n; i++ {
		v, err := parseVec3(fields[i])
		if err != nil {
			return "", false, fmt.Errorf("%s: %w", fields[0], err)
		}
		v = ed.point(v)
		fields[i] = loaders.FormatVec3(v)
		if fields[0] == "tr" {
			ed.expand(v)
		}
	}

	out := strings.Join(fields, " ")
	if comment != "" {
		out += " " + comment
	}
	return out, true, nil
}

func (ed *editor) expand(v core.Vec3) {
	if ed.vertices == 0 {
		ed.minSeen, ed.maxSeen = v, v
	}
	ed.minSeen = ed.minSeen.Min(v)
	ed.maxSeen = ed.maxSeen.Max(v)
	ed.vertices++
}

// parseVec3 accepts x,y,z as well as space separated x y z
func parseVec3(s string) (core.Vec3, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(parts) != 3 {
		return core.Vec3{}, errors.New("expected three components in " + strconv.Quote(s))
	}
	var xyz [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid number %q", p)
		}
		xyz[i] = v
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}
