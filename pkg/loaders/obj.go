package loaders

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-minirt/pkg/core"
)

// Mesh is a triangle soup read from a Wavefront OBJ file
type Mesh struct {
	Vertices []core.Vec3
	Faces    [][3]int // Zero-based vertex indices
}

// Bounds returns the axis-aligned extent of the vertices referenced by faces
func (m *Mesh) Bounds() (lo, hi core.Vec3) {
	lo = core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi = lo.Negate()
	for _, f := range m.Faces {
		for _, i := range f {
			lo = lo.Min(m.Vertices[i])
			hi = hi.Max(m.Vertices[i])
		}
	}
	return lo, hi
}

// LoadOBJ loads a Wavefront OBJ mesh
func LoadOBJ(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	return ParseOBJ(file)
}

// ParseOBJ reads vertex positions and faces. Texture coordinates, normals,
// groups and materials are ignored. Polygons are fan-triangulated.
func ParseOBJ(reader io.Reader) (*Mesh, error) {
	mesh := &Mesh{}
	scanner := bufio.NewScanner(reader)
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, &ParseError{Line: line, Msg: "vertex needs three coordinates"}
			}
			var xyz [3]float64
			for i := range xyz {
				v, err := strconv.ParseFloat(fields[1+i], 64)
				if err != nil {
					return nil, &ParseError{Line: line, Msg: "invalid vertex coordinate", Err: err}
				}
				xyz[i] = v
			}
			mesh.Vertices = append(mesh.Vertices, core.NewVec3(xyz[0], xyz[1], xyz[2]))
		case "f":
			if len(fields) < 4 {
				return nil, &ParseError{Line: line, Msg: "face needs at least three vertices"}
			}
			indices := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := resolveIndex(ref, len(mesh.Vertices))
				if err != nil {
					return nil, &ParseError{Line: line, Msg: "invalid face", Err: err}
				}
				indices = append(indices, idx)
			}
			for i := 1; i+1 < len(indices); i++ {
				mesh.Faces = append(mesh.Faces, [3]int{indices[0], indices[i], indices[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	if len(mesh.Faces) == 0 {
		return nil, ErrEmptyMesh
	}
	return mesh, nil
}

// resolveIndex turns a v, v/vt, v//vn or v/vt/vn reference into a zero-based
// vertex index. Negative indices count back from the last vertex read.
func resolveIndex(ref string, count int) (int, error) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("vertex reference %q", ref)
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	}
	return 0, fmt.Errorf("vertex index %d out of range (have %d)", n, count)
}

// WriteRT writes mesh as a .rt scene centered on its bounding box, with a
// default ambient light, camera and light ahead of the triangles.
func WriteRT(w io.Writer, mesh *Mesh) error {
	lo, hi := mesh.Bounds()
	center := lo.Add(hi).Multiply(0.5)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "A 0.1 255,255,255")
	fmt.Fprintln(bw, "C 0,0,5 0,0,-1 60")
	fmt.Fprintln(bw, "L 10,10,10 0.7 255,255,255")
	fmt.Fprintln(bw)

	for _, f := range mesh.Faces {
		fmt.Fprint(bw, "tr")
		for _, i := range f {
			fmt.Fprintf(bw, " %s", FormatVec3(mesh.Vertices[i].Subtract(center)))
		}
		fmt.Fprintln(bw, " 200,200,200")
	}

	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "%s %s\n", BoundsMinTag, FormatVec3(lo.Subtract(center)))
	fmt.Fprintf(bw, "%s %s\n", BoundsMaxTag, FormatVec3(hi.Subtract(center)))
	return bw.Flush()
}

// Bounds comment tags written after converted meshes
const (
	BoundsMinTag = "# Bounds min"
	BoundsMaxTag = "# Bounds max"
)

// FormatVec3 renders v as x,y,z with six decimals
func FormatVec3(v core.Vec3) string {
	return fmt.Sprintf("%.6f,%.6f,%.6f", v.X, v.Y, v.Z)
}
