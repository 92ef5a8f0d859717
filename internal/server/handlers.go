package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/theirongolddev/kpiboard/internal/model"
	"github.com/theirongolddev/kpiboard/internal/pickup"
	"github.com/theirongolddev/kpiboard/internal/pipeline"
	"github.com/theirongolddev/kpiboard/internal/sparkline"
)

// Default tooltip box and viewport, in pixels, when a request omits them.
const (
	defaultTooltipW  = 180
	defaultTooltipH  = 110
	defaultViewportW = 1280
	defaultViewportH = 800
)

// Handler returns the HTTP routes of the service.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/status", s.handleStatus)
	r.Get("/v1/events", s.handleEvents)
	r.Get("/v1/stream", s.handleStream)

	r.Route("/v1/cards", func(cr chi.Router) {
		cr.Get("/", s.handleCards)
		cr.Route("/{key}", func(kr chi.Router) {
			kr.Get("/", s.handleCard)
			kr.Get("/pickup", s.handlePickup)
			kr.Get("/sparkline.svg", s.handleSparkline)
			kr.Get("/tooltip", s.handleTooltip)
		})
	})

	return r
}

// requestLogger logs method, path, status and duration of every request.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			}
			if ww.Status() >= http.StatusInternalServerError {
				log.Error("request failed", fields...)
				return
			}
			log.Info("request", fields...)
		})
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleCards(w http.ResponseWriter, _ *http.Request) {
	cards, err := s.loadCards()
	if err != nil {
		s.log.Error("loading cards", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "loading cards failed")
		return
	}
	writeJSON(w, http.StatusOK, pipeline.NewViews(cards))
}

// card resolves the {key} URL parameter, writing the error response itself
// when it cannot.
func (s *Service) card(w http.ResponseWriter, r *http.Request) (model.Card, bool) {
	cards, err := s.loadCards()
	if err != nil {
		s.log.Error("loading cards", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "loading cards failed")
		return model.Card{}, false
	}
	key := chi.URLParam(r, "key")
	c, ok := pipeline.Find(cards, key)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown metric %q", key))
		return model.Card{}, false
	}
	return c, true
}

func (s *Service) series(c model.Card) pickup.Series {
	return s.gens.For(c.Key).Generate(c.Domain, c.Yesterday, c.IsExpense)
}

func (s *Service) handleCard(w http.ResponseWriter, r *http.Request) {
	c, ok := s.card(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.NewView(c))
}

// PickupResponse is served at /v1/cards/{key}/pickup.
type PickupResponse struct {
	View   pipeline.View    `json:"view"`
	Series pickup.Series    `json:"series"`
	Layout sparkline.Layout `json:"layout"`
	Pickup float64          `json:"pickup"`
}

func (s *Service) handlePickup(w http.ResponseWriter, r *http.Request) {
	c, ok := s.card(w, r)
	if !ok {
		return
	}
	series := s.series(c)
	writeJSON(w, http.StatusOK, PickupResponse{
		View:   pipeline.NewView(c),
		Series: series,
		Layout: sparkline.Compute(series, c.IsExpense),
		Pickup: series.Pickup(),
	})
}

func (s *Service) handleSparkline(w http.ResponseWriter, r *http.Request) {
	c, ok := s.card(w, r)
	if !ok {
		return
	}

	hovered := -1
	q := r.URL.Query()
	switch {
	case q.Has("hover"):
		i, err := strconv.Atoi(q.Get("hover"))
		if err != nil || i < 0 || i >= pickup.SeriesLen {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("hover must be an index in [0,%d]", pickup.SeriesLen-1))
			return
		}
		hovered = i
	case q.Has("x"):
		x, err := strconv.ParseFloat(q.Get("x"), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "x must be a number")
			return
		}
		hovered = sparkline.IndexAt(x, pickup.SeriesLen)
	}

	l := sparkline.Compute(s.series(c), c.IsExpense)
	svg := sparkline.RenderSVG(l, hovered, sparkline.SVGOptions{
		Title: c.Title + " pickup",
		ID:    "spark-" + c.Key,
	})

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(svg))
}

// TooltipResponse is served at /v1/cards/{key}/tooltip.
type TooltipResponse struct {
	Index   int               `json:"index"`
	Tooltip sparkline.Tooltip `json:"tooltip"`
	Rect    sparkline.Rect    `json:"rect"`
	Guide   sparkline.Guide   `json:"guide"`
}

func (s *Service) handleTooltip(w http.ResponseWriter, r *http.Request) {
	c, ok := s.card(w, r)
	if !ok {
		return
	}

	q := queryFloats{r: r}
	x := q.get("x", sparkline.Width-sparkline.Padding)
	anchor := sparkline.Vec{X: q.get("px", 0), Y: q.get("py", 0)}
	viewport := sparkline.Size{W: q.get("vw", defaultViewportW), H: q.get("vh", defaultViewportH)}
	size := sparkline.Size{W: q.get("w", defaultTooltipW), H: q.get("h", defaultTooltipH)}
	if q.err != nil {
		writeError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	var h sparkline.Hover
	idx := h.Move(x, anchor)
	tip, _ := h.Tooltip(s.series(c), c.Domain, c.IsExpense)
	guide, _ := h.Guide()

	writeJSON(w, http.StatusOK, TooltipResponse{
		Index:   idx,
		Tooltip: tip,
		Rect:    sparkline.PlaceTooltip(h.Anchor(), size, viewport, sparkline.TooltipMargin),
		Guide:   guide,
	})
}

// queryFloats reads optional float query values, keeping the first error.
type queryFloats struct {
	r   *http.Request
	err error
}

func (q *queryFloats) get(name string, def float64) float64 {
	raw := q.r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if q.err == nil {
			q.err = fmt.Errorf("%s must be a number", name)
		}
		return def
	}
	return v
}
