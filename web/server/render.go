package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"

	"github.com/df07/go-minirt/pkg/renderer"
)

// RenderResponse is the JSON form of a rendered frame
type RenderResponse struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int     `json:"totalPixels"`
	HitPixels   int     `json:"hitPixels"`
	Coverage    float64 `json:"coverage"`
	Tiles       int     `json:"tiles"`
	Workers     int     `json:"workers"`
}

// handleRender renders a frame and returns it as PNG, or as JSON with format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sc, err := s.parseFrameRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	opts := renderer.DefaultOptions()
	opts.Width, opts.Height, opts.Normals = req.Width, req.Height, req.Normals

	rt, err := renderer.NewRaytracer(sc, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A client disconnect cancels the render through the request context
	fb, stats, err := rt.Render(r.Context())
	if err != nil {
		logger.Infof("render of %s aborted: %v", req.Scene, err)
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("Render error: %v", err))
		return
	}
	logger.Infof("rendered %s at %dx%d in %v", req.Scene, req.Width, req.Height, stats.Duration)

	data, err := encodePNG(fb.ToImage())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, RenderResponse{
			ImageData: base64.StdEncoding.EncodeToString(data),
			Stats: Stats{
				TotalPixels: stats.TotalPixels,
				HitPixels:   stats.HitPixels,
				Coverage:    stats.Coverage(),
				Tiles:       stats.Tiles,
				Workers:     stats.Workers,
			},
			ElapsedMs: stats.Duration.Milliseconds(),
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
