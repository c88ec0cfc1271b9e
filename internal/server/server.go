// Package server exposes the feasibility engine over a JSON HTTP API.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/LayerFit/internal/engine"
	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/sirupsen/logrus"
)

// Server answers queries against one read-only inventory.
type Server struct {
	Inventory *model.Inventory
	Settings  model.Settings
	Log       logrus.FieldLogger

	fitter *engine.Fitter
}

func New(inv *model.Inventory, settings model.Settings, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		Inventory: inv,
		Settings:  settings,
		Log:       log,
		fitter:    engine.NewFitter(inv, settings.Distance),
	}
}

// Router returns the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/inventory", s.handleInventory)
	r.GET("/presets", s.handlePresets)
	r.GET("/pieces/:id/orientations", s.handleOrientations)
	r.POST("/check", s.handleCheck)
	r.POST("/dedup", s.handleDedup)
	r.POST("/redup", s.handleRedup)
	r.POST("/match", s.handleMatch)
	return r
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.Log.WithField("addr", addr).Info("Server listening")
	return s.Router().Run(addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).Round(time.Microsecond),
		}).Debug("Handled request")
	}
}

// badRequest answers 400 with the error message.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) handleInventory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"container": s.Inventory.Container,
		"pieces":    s.Inventory.Pieces,
		"classes":   s.Inventory.ClassCount(),
		"estimate":  model.CalculateAreaEstimate(s.Inventory),
	})
}

func (s *Server) handlePresets(c *gin.Context) {
	type presetInfo struct {
		Name        string      `json:"name"`
		Description string      `json:"description"`
		Container   model.Piece `json:"container"`
		Pieces      int         `json:"pieces"`
	}
	var out []presetInfo
	for _, name := range model.PresetNames() {
		p, err := model.GetPreset(name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, presetInfo{Name: p.Name, Description: p.Description, Container: p.Container, Pieces: len(p.Pieces)})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleOrientations(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid piece id %q", c.Param("id")))
		return
	}
	id := model.PieceID(n)
	if !s.Inventory.Has(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%v: %d", model.ErrUnknownPiece, id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           id,
		"orientations": s.Inventory.Orientations(id),
		"class":        s.Inventory.Class(id),
	})
}

type checkRequest struct {
	IDs     []model.PieceID `json:"ids"`
	Ordered bool            `json:"ordered"`
}

type checkResponse struct {
	Feasible bool         `json:"feasible"`
	Layout   model.Layout `json:"layout,omitempty"`
}

// handleCheck tests one subset. With ordered set, the pieces are placed
// exactly in request order and orientation; otherwise every ordering and
// orientation is searched.
func (s *Server) handleCheck(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	combo := model.NewCombination(req.IDs...)
	if err := s.Inventory.Validate(combo); err != nil {
		badRequest(c, err)
		return
	}

	var resp checkResponse
	if req.Ordered {
		if len(combo) != len(req.IDs) {
			badRequest(c, errors.New("ordered check needs distinct ids"))
			return
		}
		seq := make([]model.Piece, len(req.IDs))
		for i, id := range req.IDs {
			seq[i], _ = s.Inventory.Piece(id)
		}
		resp.Layout, resp.Feasible = s.fitter.CheckOrdered(seq)
	} else {
		resp.Layout, resp.Feasible = s.fitter.Check(combo)
	}
	c.JSON(http.StatusOK, resp)
}

type combinationsRequest struct {
	Combinations [][]model.PieceID `json:"combinations"`
}

func (s *Server) parseCombinations(raw [][]model.PieceID) ([]model.Combination, error) {
	out := make([]model.Combination, len(raw))
	for i, ids := range raw {
		out[i] = model.NewCombination(ids...)
		if err := s.Inventory.Validate(out[i]); err != nil {
			return nil, fmt.Errorf("combination %d: %w", i+1, err)
		}
	}
	return out, nil
}

// handleDedup returns the dedup key of each combination and the reduced list.
func (s *Server) handleDedup(c *gin.Context) {
	var req combinationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	combos, err := s.parseCombinations(req.Combinations)
	if err != nil {
		badRequest(c, err)
		return
	}
	keys := make([]string, len(combos))
	for i, combo := range combos {
		keys[i] = engine.DedupKey(s.Inventory, combo)
	}
	c.JSON(http.StatusOK, gin.H{
		"keys":         keys,
		"deduplicated": engine.Dedup(s.Inventory, combos),
	})
}

type redupRequest struct {
	IDs     []model.PieceID `json:"ids"`
	Exclude []model.PieceID `json:"exclude"`
}

func (s *Server) handleRedup(c *gin.Context) {
	var req redupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	combo := model.NewCombination(req.IDs...)
	if err := s.Inventory.Validate(combo); err != nil {
		badRequest(c, err)
		return
	}
	expanded := engine.Redup(s.Inventory, combo, model.NewCombination(req.Exclude...))
	c.JSON(http.StatusOK, gin.H{"combinations": expanded})
}

// handleMatch combines the given feasible layers into coverings and ranks them.
func (s *Server) handleMatch(c *gin.Context) {
	var req combinationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	layers, err := s.parseCombinations(req.Combinations)
	if err != nil {
		badRequest(c, err)
		return
	}
	solutions := engine.NewMatcher(s.Inventory, s.Log).Match(layers)
	c.JSON(http.StatusOK, gin.H{
		"solutions": solutions,
		"ranking":   engine.Rank(s.Inventory, solutions),
	})
}
