package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Zachkp/portfolio/internal/glitch"
	"github.com/Zachkp/portfolio/internal/shader"
)

const (
	defaultMediaWidth  = 640
	defaultMediaHeight = 360
	// warmupTicks advances a still glitch frame past its initial state.
	warmupTicks = 10
)

// size reads w and h, clamped to the configured maximum.
func (s *Server) size(c *gin.Context) (int, int) {
	clampDim := func(key string, def, hi int) int {
		v := queryInt(c, key, def)
		return max(1, min(v, hi))
	}
	return clampDim("w", defaultMediaWidth, s.cfg.Glitch.MaxWidth),
		clampDim("h", defaultMediaHeight, s.cfg.Glitch.MaxHeight)
}

func seedParam(c *gin.Context) uint64 {
	v, err := strconv.ParseUint(c.Query("seed"), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func (s *Server) glitchOptions(seed uint64) glitch.Options {
	return glitch.Options{
		Smooth:   s.cfg.Glitch.Smooth,
		Interval: s.cfg.Glitch.Interval,
		Seed:     seed,
	}
}

// glitchPNG renders a still of the letter-glitch grid.
func (s *Server) glitchPNG(c *gin.Context) {
	w, h := s.size(c)
	grid := glitch.NewGrid(w, h, s.glitchOptions(seedParam(c)))
	for range warmupTicks {
		grid.Tick()
		for grid.NeedsRedraw() {
			grid.Step()
		}
	}

	var buf bytes.Buffer
	if err := glitch.WritePNG(&buf, grid); err != nil {
		s.logger.Error("rendering glitch", "error", err)
		respondError(c, http.StatusInternalServerError, "render failed")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// background renders a decorative shader pattern, e.g. /backgrounds/voronoi.png.
func (s *Server) background(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("file"), ".png")
	if !ok {
		respondError(c, http.StatusNotFound, "unknown background")
		return
	}
	kind := shader.Kind(name)
	if _, err := shader.Lookup(kind); err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	w, h := s.size(c)
	t, err := queryFloat(c, "t", 0)
	if err != nil || !finite(t) {
		respondError(c, http.StatusBadRequest, "invalid t")
		return
	}

	var buf bytes.Buffer
	if err := shader.WritePNG(&buf, kind, w, h, t, uint32(seedParam(c))); err != nil {
		s.logger.Error("rendering background", "kind", kind, "error", err)
		respondError(c, http.StatusInternalServerError, "render failed")
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// resizeMessage is sent by the client when its container changes size.
type resizeMessage struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

const wsWriteTimeout = 5 * time.Second

// glitchStream animates a grid over a websocket. Frames are written
// only by the animator goroutine; the read loop handles resizes and
// cancels the animation when the client goes away.
func (s *Server) glitchStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Debug("glitch: websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	w, h := s.size(c)
	grid := glitch.NewGrid(w, h, s.glitchOptions(seedParam(c)))
	anim := glitch.NewAnimator(grid, func(f glitch.Frame) error {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(f)
	}, s.logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer cancel()
		for {
			var msg resizeMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Debug("glitch: websocket read", "error", err)
				}
				return
			}
			if msg.Width > 0 && msg.Height > 0 {
				anim.Resize(min(msg.Width, s.cfg.Glitch.MaxWidth), min(msg.Height, s.cfg.Glitch.MaxHeight))
			}
		}
	}()

	if err := anim.Run(ctx); err != nil {
		s.logger.Debug("glitch: stream ended", "error", err)
	}
}
