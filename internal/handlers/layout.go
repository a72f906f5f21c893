package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Zachkp/portfolio/internal/i18n"
	"github.com/Zachkp/portfolio/internal/responsive"
	"github.com/Zachkp/portfolio/internal/reveal"
)

// layoutMessage is sent by the page script: the observed width of the
// page container whenever it resizes, and a geometry snapshot of the
// reveal lines whenever the page scrolls.
type layoutMessage struct {
	Width    float64          `json:"width,omitempty"`
	Geometry *reveal.Geometry `json:"geometry,omitempty"`
}

// layoutUpdate is sent back. Type is "size", "device" or "reveal".
type layoutUpdate struct {
	Type   string                 `json:"type"`
	Name   string                 `json:"name,omitempty"`
	Size   float64                `json:"size,omitempty"`
	Device responsive.DeviceClass `json:"device,omitempty"`
	Lines  []reveal.LineState     `json:"lines,omitempty"`
}

// layoutSession adapts one page's websocket to a SizeObserver feed and a
// reveal ScrollSource.
type layoutSession struct {
	conn    *websocket.Conn
	feed    *responsive.Feed
	scrolls chan struct{}

	mu       sync.Mutex
	geometry reveal.Geometry
	scrolled bool
	device   responsive.DeviceClass

	writeMu sync.Mutex
}

func (ls *layoutSession) Events(context.Context) <-chan struct{} { return ls.scrolls }

func (ls *layoutSession) Geometry() (reveal.Geometry, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.geometry, ls.scrolled
}

func (ls *layoutSession) Device() responsive.DeviceClass {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.device
}

func (ls *layoutSession) send(u layoutUpdate) error {
	ls.writeMu.Lock()
	defer ls.writeMu.Unlock()
	ls.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return ls.conn.WriteJSON(u)
}

// resized records a width and reports whether the device class changed.
func (ls *layoutSession) resized(width float64) (responsive.DeviceClass, bool) {
	class := responsive.Classify(width)
	ls.mu.Lock()
	changed := class != ls.device
	ls.device = class
	ls.mu.Unlock()
	ls.feed.Push(width)
	return class, changed
}

func (ls *layoutSession) scroll(g reveal.Geometry) {
	ls.mu.Lock()
	ls.geometry, ls.scrolled = g, true
	ls.mu.Unlock()
	select {
	case ls.scrolls <- struct{}{}:
	default:
	}
}

// layoutStream keeps a page's fluid sizes and reveal masks current. Each
// observed resize recomputes the heading size, the shell padding and the
// shell width; scroll snapshots drive a Revealer.
func (s *Server) layoutStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Debug("layout: websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	lang := s.requestLang(c)
	ls := &layoutSession{
		conn:    conn,
		feed:    responsive.NewFeed(),
		scrolls: make(chan struct{}, 1),
		device:  responsive.Classify(viewportHint(c.Request, s.cfg.Layout.DefaultViewport)),
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for name, b := range map[string]responsive.Bounds{
		"heading": s.cfg.Layout.Heading,
		"padding": s.cfg.Layout.Padding,
		"width":   s.cfg.Layout.Width,
	} {
		f := responsive.NewFluid(b, func(size float64) {
			if err := ls.send(layoutUpdate{Type: "size", Name: name, Size: size}); err != nil {
				cancel()
			}
		})
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Run(ctx, ls.feed)
		}()
	}

	rv := reveal.New(ls, ls.Device(), i18n.IsRTL(lang), func(states []reveal.LineState) {
		if err := ls.send(layoutUpdate{Type: "reveal", Lines: states}); err != nil {
			cancel()
		}
	})
	rv.Device = ls.Device
	wg.Add(1)
	go func() {
		defer wg.Done()
		rv.Run(ctx)
	}()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var msg layoutMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("layout: websocket read", "error", err)
			}
			cancel()
			return
		}
		if msg.Width >= minViewport && msg.Width <= maxViewport {
			if class, changed := ls.resized(msg.Width); changed {
				if err := ls.send(layoutUpdate{Type: "device", Device: class}); err != nil {
					cancel()
					return
				}
			}
		}
		if msg.Geometry != nil && len(msg.Geometry.Lines) <= maxRevealLines {
			ls.scroll(*msg.Geometry)
		}
	}
}
