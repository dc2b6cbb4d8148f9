package api

import (
	"errors"
	"io/fs"
	"math"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/samcharles93/voxel/internal/logger"
	"github.com/samcharles93/voxel/pkg/nrrd"
)

// Server is the read-only inspection API over a directory of volumes.
type Server struct {
	store *VolumeStore
	log   logger.Logger
}

func NewServer(store *VolumeStore, log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{store: store, log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(requestID)

	e.GET("/v1/volumes", s.handleListVolumes)
	e.GET("/v1/volumes/:name/header", s.handleHeader)
	e.GET("/v1/volumes/:name/stats", s.handleStats)
}

func (s *Server) handleListVolumes(c *echo.Context) error {
	vols, err := s.store.List()
	if err != nil {
		s.log.Error("list volumes failed", "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", "cannot list volumes", "", "")
	}
	return c.JSON(http.StatusOK, VolumeList{Object: "list", Data: vols})
}

func (s *Server) handleHeader(c *echo.Context) error {
	name := c.Param("name")
	h, err := s.store.Header(name)
	if err != nil {
		s.log.Debug("header lookup failed", "volume", name, "error", err)
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, h)
}

func (s *Server) handleStats(c *echo.Context) error {
	name := c.Param("name")
	order := nrrd.OrderF
	if q := c.QueryParam("order"); q != "" {
		o, err := nrrd.ParseOrder(q)
		if err != nil {
			return writeBadRequest(c, err.Error())
		}
		order = o
	}

	// Resolve the volume first so a missing file is a 404 while a missing
	// detached data file is reported as a broken volume.
	if _, err := s.store.Header(name); err != nil {
		return writeErr(c, err)
	}
	a, h, err := s.store.Read(name, order)
	if err != nil {
		s.log.Warn("decode volume failed", "volume", name, "error", err)
		if errors.Is(err, fs.ErrNotExist) {
			return writeError(c, http.StatusUnprocessableEntity, "invalid_volume_error", err.Error(), "name", "")
		}
		return writeErr(c, err)
	}

	st := a.Stats()
	out := VolumeStats{
		Name:  name,
		DType: a.DType().Name(),
		Order: string(order),
		Shape: a.Shape(),
		Count: st.Count,
		Min:   finite(st.Min),
		Max:   finite(st.Max),
		Mean:  finite(st.Mean),
		NaNs:  st.NaNs,
	}
	if enc, ok := h.Text("encoding"); ok {
		out.Encoding = enc
	}
	return c.JSON(http.StatusOK, out)
}

// finite drops values JSON cannot carry.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
