package server

import (
	"encoding/json"
	"net/http"

	"github.com/chewxy/math32"

	"github.com/ioreshnikov/rtrace/pkg/core"
)

// InspectResponse reports what the primary ray through a pixel meets:
// the nearest intersection, or the sky color when nothing is hit
type InspectResponse struct {
	Hit    bool        `json:"hit"`
	T      float32     `json:"t,omitempty"`
	Point  *[3]float32 `json:"point,omitempty"`
	Normal *[3]float32 `json:"normal,omitempty"`
	Sky    *[3]float32 `json:"sky,omitempty"`
	PixelX int         `json:"pixelX"`
	PixelY int         `json:"pixelY"`
}

// handleInspect shoots the primary ray through one pixel and returns
// the intersection data as JSON, for debugging scenes from the viewer
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	x, err := parseIntParam(query, "x", 0, 0, req.Width-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(query, "y", 0, 0, req.Height-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	selectedScene, err := s.buildScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Pixel coordinates arrive in raster order (y down); the camera
	// expects t=0 at the bottom of the viewport
	u := (float32(x) + 0.5) / float32(req.Width)
	v := (float32(req.Height-1-y) + 0.5) / float32(req.Height)

	ray := selectedScene.GetCamera().GetRay(u, v)
	pathTracer := selectedScene.GetIntegrator()

	response := InspectResponse{PixelX: x, PixelY: y}
	if hit, ok := selectedScene.GetWorld().Hit(ray, pathTracer.Epsilon, math32.MaxFloat32); ok {
		response.Hit = true
		response.T = hit.T
		response.Point = vecToArray(hit.Point)
		response.Normal = vecToArray(hit.Normal)
	} else {
		response.Sky = vecToArray(pathTracer.Background(ray.Direction))
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func vecToArray(v core.Vec3) *[3]float32 {
	return &[3]float32{v.X, v.Y, v.Z}
}
