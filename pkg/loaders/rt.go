package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
	"github.com/df07/go-minirt/pkg/log"
	"github.com/df07/go-minirt/pkg/material"
	"github.com/df07/go-minirt/pkg/scene"
)

var logger = log.New("loaders")

// unitTolerance is how far a direction may be from unit length before it is rejected
const unitTolerance = 1e-3

// rtParser encapsulates the state for parsing one .rt scene file
type rtParser struct {
	scene   *scene.Scene
	baseDir string
	bumps   map[string]*material.BumpMap // Shared maps keyed by resolved path
	line    int
}

// LoadRT loads and parses a .rt scene file. Relative bump map paths are
// resolved against the file's directory.
func LoadRT(filename string) (*scene.Scene, error) {
	if filepath.Ext(filename) != ".rt" {
		return nil, fmt.Errorf("invalid file type %q: only .rt files are allowed", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	return ParseRT(file, filepath.Dir(filename))
}

// ParseRT parses .rt content from an io.Reader. On error every bump map loaded
// so far is released and no scene is returned.
func ParseRT(reader io.Reader, baseDir string) (*scene.Scene, error) {
	p := &rtParser{
		scene:   scene.New(),
		baseDir: baseDir,
		bumps:   make(map[string]*material.BumpMap),
	}

	if err := p.parse(reader); err != nil {
		p.scene.Close()
		return nil, err
	}

	logger.Debugf("parsed scene with %d primitives (%d shared bump maps)", len(p.scene.Primitives), len(p.bumps))
	return p.scene, nil
}

func (p *rtParser) parse(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		p.line++
		if err := p.processLine(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	switch {
	case !p.scene.Ambient.Present:
		return &ParseError{Msg: "missing ambient light (A)", Err: scene.ErrNoAmbient}
	case !p.scene.Camera.Present:
		return &ParseError{Msg: "missing camera (C)", Err: scene.ErrNoCamera}
	case !p.scene.Light.Present:
		return &ParseError{Msg: "missing light (L)", Err: scene.ErrNoLight}
	}
	return nil
}

func (p *rtParser) processLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	var err error
	switch fields[0] {
	case "A":
		err = p.parseAmbient(fields[1:])
	case "C":
		err = p.parseCamera(fields[1:])
	case "L":
		err = p.parseLight(fields[1:])
	case "sp":
		err = p.parseSphere(fields[1:])
	case "pl":
		err = p.parsePlane(fields[1:])
	case "cy":
		err = p.parseCylinder(fields[1:])
	case "tr":
		err = p.parseTriangle(fields[1:])
	case "ep":
		err = p.parseParaboloid(fields[1:], geometry.Elliptic)
	case "hp":
		err = p.parseParaboloid(fields[1:], geometry.Hyperbolic)
	default:
		err = fmt.Errorf("%w %q", ErrUnknownElement, fields[0])
	}
	if err == nil {
		return nil
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Line: p.line, Msg: fields[0], Err: err}
}

func (p *rtParser) parseAmbient(args []string) error {
	if p.scene.Ambient.Present {
		return ErrDuplicateElement
	}
	if len(args) != 2 {
		return fmt.Errorf("expected 'A ratio r,g,b', got %d fields", len(args))
	}
	ratio, err := parseRatio(args[0])
	if err != nil {
		return err
	}
	color, err := parseColor(args[1])
	if err != nil {
		return err
	}
	p.scene.Ambient = scene.Ambient{Ratio: ratio, Color: color, Present: true}
	return nil
}

func (p *rtParser) parseCamera(args []string) error {
	if p.scene.Camera.Present {
		return ErrDuplicateElement
	}
	if len(args) != 3 && len(args) != 4 {
		return fmt.Errorf("expected 'C pos dir fov [focal]', got %d fields", len(args))
	}
	pos, err := parseVec3(args[0])
	if err != nil {
		return err
	}
	dir, err := parseDirection(args[1])
	if err != nil {
		return err
	}
	fov, err := parseFloat(args[2])
	if err != nil {
		return err
	}
	if fov <= 0 || fov >= 180 {
		return fmt.Errorf("field of view %g outside (0,180)", fov)
	}
	focal := 1.0
	if len(args) == 4 {
		if focal, err = parsePositive(args[3]); err != nil {
			return err
		}
	}
	p.scene.Camera = scene.Camera{Position: pos, Direction: dir, FOV: fov, FocalLength: focal, Present: true}
	return nil
}

func (p *rtParser) parseLight(args []string) error {
	if p.scene.Light.Present {
		return ErrDuplicateElement
	}
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("expected 'L pos brightness [r,g,b]', got %d fields", len(args))
	}
	pos, err := parseVec3(args[0])
	if err != nil {
		return err
	}
	brightness, err := parseRatio(args[1])
	if err != nil {
		return err
	}
	color := core.NewVec3(1, 1, 1)
	if len(args) == 3 {
		if color, err = parseColor(args[2]); err != nil {
			return err
		}
	}
	p.scene.Light = scene.Light{Position: pos, Brightness: brightness, Color: color, Present: true}
	return nil
}

func (p *rtParser) parseSphere(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("expected 'sp center diameter r,g,b', got %d fields", len(args))
	}
	center, err := parseVec3(args[0])
	if err != nil {
		return err
	}
	diameter, err := parsePositive(args[1])
	if err != nil {
		return err
	}
	return p.addPrimitive(geometry.NewSphere(center, diameter/2), args[2], args[3:])
}

func (p *rtParser) parsePlane(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("expected 'pl point normal r,g,b', got %d fields", len(args))
	}
	point, err := parseVec3(args[0])
	if err != nil {
		return err
	}
	normal, err := parseDirection(args[1])
	if err != nil {
		return err
	}
	return p.addPrimitive(geometry.NewPlane(point, normal), args[2], args[3:])
}

func (p *rtParser) parseCylinder(args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("expected 'cy center axis diameter height r,g,b', got %d fields", len(args))
	}
	center, err := parseVec3(args[0])
	if err != nil {
		return err
	}
	axis, err := parseDirection(args[1])
	if err != nil {
		return err
	}
	diameter, err := parsePositive(args[2])
	if err != nil {
		return err
	}
	height, err := parsePositive(args[3])
	if err != nil {
		return err
	}
	return p.addPrimitive(geometry.NewCylinder(center, axis, diameter/2, height), args[4], args[5:])
}

func (p *rtParser) parseTriangle(args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("expected 'tr a b c r,g,b', got %d fields", len(args))
	}
	var v [3]core.Vec3
	for i := range v {
		var err error
		if v[i], err = parseVec3(args[i]); err != nil {
			return err
		}
	}
	if v[1].Subtract(v[0]).Cross(v[2].Subtract(v[0])).Length() < 1e-12 {
		return errors.New("degenerate triangle")
	}
	return p.addPrimitive(geometry.NewTriangle(v[0], v[1], v[2]), args[3], args[4:])
}

func (p *rtParser) parseParaboloid(args []string, kind geometry.ParaboloidKind) error {
	if len(args) < 6 {
		return fmt.Errorf("expected 'center axis rx ry height r,g,b', got %d fields", len(args))
	}
	center, err := parseVec3(args[0])
	if err != nil {
		return err
	}
	axis, err := parseDirection(args[1])
	if err != nil {
		return err
	}
	var dims [3]float64
	for i := range dims {
		if dims[i], err = parsePositive(args[2+i]); err != nil {
			return err
		}
	}
	return p.addPrimitive(geometry.NewParaboloid(center, axis, dims[0], dims[1], dims[2], kind), args[5], args[6:])
}

// addPrimitive parses the color and decoration tail, then appends the primitive
func (p *rtParser) addPrimitive(shape geometry.Shape, colorField string, tail []string) error {
	color, err := parseColor(colorField)
	if err != nil {
		return err
	}
	deco, err := p.parseDecoration(tail)
	if err != nil {
		return err
	}
	prim := p.scene.Add(shape, color)
	prim.Decoration = deco
	return nil
}

// parseDecoration reads the optional [cb scale | bm path strength] [ks shininess] tail
func (p *rtParser) parseDecoration(tail []string) (deco scene.Decoration, err error) {
	defer func() {
		if err != nil && deco.Bump != nil {
			deco.Bump.Release()
			deco.Bump = nil
		}
	}()

	if len(tail) > 0 {
		switch tail[0] {
		case "cb":
			if len(tail) < 2 {
				return deco, errors.New("expected 'cb scale'")
			}
			scale, err := parsePositive(tail[1])
			if err != nil {
				return deco, fmt.Errorf("checker scale: %w", err)
			}
			deco.Checker = material.NewChecker(scale)
			tail = tail[2:]
		case "bm":
			if len(tail) < 3 {
				return deco, errors.New("expected 'bm path strength'")
			}
			strength, err := parseFloat(tail[2])
			if err != nil || strength < 0 {
				return deco, fmt.Errorf("invalid bump strength %q", tail[2])
			}
			if deco.Bump, err = p.bump(tail[1]); err != nil {
				return deco, err
			}
			deco.BumpStrength = strength
			tail = tail[3:]
		}
	}

	switch len(tail) {
	case 0:
		return deco, nil
	case 2:
		ks, err := parseRatio(tail[0])
		if err != nil {
			return deco, fmt.Errorf("specular coefficient: %w", err)
		}
		shininess, err := parsePositive(tail[1])
		if err != nil {
			return deco, fmt.Errorf("shininess: %w", err)
		}
		deco.Material = material.NewMaterial(ks, shininess)
		return deco, nil
	default:
		return deco, fmt.Errorf("unexpected trailing fields %q", strings.Join(tail, " "))
	}
}

// bump returns a new owner reference to the map at path, loading it on first use
func (p *rtParser) bump(path string) (*material.BumpMap, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.baseDir, path)
	}
	if b, ok := p.bumps[path]; ok && b.Owners() > 0 {
		return b.Retain(), nil
	}
	b, err := LoadBumpMap(path)
	if err != nil {
		return nil, err
	}
	p.bumps[path] = b
	return b, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

func parsePositive(s string) (float64, error) {
	v, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("expected a positive value, got %g", v)
	}
	return v, nil
}

func parseRatio(s string) (float64, error) {
	v, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("ratio %g outside [0,1]", v)
	}
	return v, nil
}

func parseTriple(s string) ([3]float64, error) {
	var out [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("expected three comma separated values, got %q", s)
	}
	for i, part := range parts {
		v, err := parseFloat(part)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

func parseVec3(s string) (core.Vec3, error) {
	t, err := parseTriple(s)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(t[0], t[1], t[2]), nil
}

// parseDirection accepts near-unit vectors and returns them normalized exactly
func parseDirection(s string) (core.Vec3, error) {
	v, err := parseVec3(s)
	if err != nil {
		return core.Vec3{}, err
	}
	if !v.IsUnit(unitTolerance) {
		return core.Vec3{}, fmt.Errorf("direction %q is not normalized (length %g)", s, v.Length())
	}
	return v.Normalize(), nil
}

// parseColor reads r,g,b in [0,255] and scales to [0,1]
func parseColor(s string) (core.Vec3, error) {
	t, err := parseTriple(s)
	if err != nil {
		return core.Vec3{}, err
	}
	for _, c := range t {
		if c < 0 || c > 255 {
			return core.Vec3{}, fmt.Errorf("color component %g outside [0,255]", c)
		}
	}
	return core.NewVec3(t[0], t[1], t[2]).Divide(255), nil
}
