package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/df07/go-minirt/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Index        int                    `json:"index"` // Position of the primitive in the scene, -1 on a miss
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Albedo       [3]float64             `json:"albedo"`
	Specular     [3]float64             `json:"specular"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func triple(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) map[string]interface{} {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = triple(geom.Center)
		properties["radius"] = geom.Radius
	case *geometry.Plane:
		properties["point"] = triple(geom.Point)
		properties["normal"] = triple(geom.Normal)
	case *geometry.Cylinder:
		properties["center"] = triple(geom.Center)
		properties["axis"] = triple(geom.Axis)
		properties["radius"] = geom.Radius
		properties["height"] = geom.Height
	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{triple(geom.V0), triple(geom.V1), triple(geom.V2)}
		properties["normal"] = triple(geom.Normal())
	case *geometry.Paraboloid:
		properties["center"] = triple(geom.Center)
		properties["axis"] = triple(geom.Axis)
		properties["radii"] = [2]float64{geom.RX, geom.RY}
		properties["height"] = geom.Height
		properties["hyperbolic"] = geom.Kind == geometry.Hyperbolic
	}
	return properties
}

// extractDecorationInfo describes the checker, bump and specular settings of a primitive
func extractDecorationInfo(p *scene.Primitive) map[string]interface{} {
	properties := map[string]interface{}{
		"color": fmt.Sprintf("#%02x%02x%02x", int(p.Color.X*255), int(p.Color.Y*255), int(p.Color.Z*255)),
	}
	if p.Checker != nil {
		properties["checkerScale"] = p.Checker.Scale
	}
	if p.Bump != nil {
		properties["bump"] = map[string]interface{}{
			"width":    p.Bump.Width,
			"height":   p.Bump.Height,
			"strength": p.BumpStrength,
		}
	}
	if p.Material != nil {
		properties["ks"] = p.Material.Ks
		properties["shininess"] = p.Material.Shininess
	}
	return properties
}

// inspectPixel casts the primary ray through the pixel center and resolves the nearest hit
func inspectPixel(sc *scene.Scene, width, height, x, y int) InspectResponse {
	frame := renderer.BuildCameraFrame(sc.Camera, width, height)
	hit := sc.Hit(frame.RayForPixel(x, y), scene.Unbounded)
	if !hit.Found {
		return InspectResponse{Index: -1}
	}

	index := -1
	for i, p := range sc.Primitives {
		if p == hit.Primitive {
			index = i
			break
		}
	}

	return InspectResponse{
		Hit:          true,
		GeometryType: hit.Primitive.Kind().String(),
		Index:        index,
		Point:        triple(hit.Point),
		Normal:       triple(hit.Normal),
		Distance:     hit.T,
		Albedo:       triple(hit.Albedo),
		Specular:     triple(hit.Specular),
		Properties: map[string]interface{}{
			"geometry":   extractGeometryInfo(hit.Primitive.Shape),
			"decoration": extractDecorationInfo(hit.Primitive),
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, sc, err := s.parseFrameRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}
	if !sc.Camera.Present {
		writeError(w, http.StatusBadRequest, "Scene has no camera")
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sc, req.Width, req.Height, pixelX, pixelY))
}
