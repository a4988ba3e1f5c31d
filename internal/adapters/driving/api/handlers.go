package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/logger"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// formSubmit computes the caloric requirement and streams it, followed by
// foraging recommendations when requested. The first event is flushed
// before generation starts.
func (s *Server) formSubmit(c *gin.Context) {
	var req formRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msgBadRequest, Details: err.Error()})
		return
	}

	ctx := c.Request.Context()
	profile := req.profile()

	result, err := s.services.Calories.DailyCalories(ctx, profile)
	if err != nil {
		writeError(c, err)
		return
	}

	w := newEventWriter(c)
	first := caloriesEvent{CaloricIntake: result.Rounded(), ForagingPara: domain.ForagingThinking}
	if !req.wantsTips() {
		first.ForagingPara = domain.ForagingDisabled
	}
	if err := w.write(eventCalories, &first); err != nil {
		logger.Debug("formSubmit: write calories event: %v", err)
		return
	}
	if !req.wantsTips() {
		return
	}

	text, err := s.services.Foraging.GenerateTips(ctx, profile)
	if err != nil {
		logger.Warn("Foraging generation failed (request %s): %v", c.GetString(requestIDKey), err)
		text = domain.ForagingFallback
	}
	if err := w.write(eventForaging, &foragingEvent{ForagingPara: text}); err != nil {
		logger.Debug("formSubmit: write foraging event: %v", err)
	}
}

func (s *Server) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msgBadRequest, Details: err.Error()})
		return
	}

	result, err := s.services.Search.Search(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	if result.Results == nil {
		result.Results = []domain.FoodRecord{}
	}
	c.JSON(http.StatusOK, result)
}

// eventWriter frames formSubmit events as NDJSON lines or SSE events,
// chosen from the request's Accept header.
type eventWriter struct {
	c   *gin.Context
	sse bool
}

func newEventWriter(c *gin.Context) *eventWriter {
	w := &eventWriter{
		c:   c,
		sse: strings.Contains(c.GetHeader("Accept"), contentTypeSSE),
	}
	h := c.Writer.Header()
	if w.sse {
		h.Set("Content-Type", contentTypeSSE)
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
	} else {
		h.Set("Content-Type", contentTypeNDJSON)
	}
	h.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	return w
}

// write sends one event and flushes it.
func (w *eventWriter) write(name string, payload any) error {
	if w.sse {
		w.c.SSEvent(name, payload)
	} else {
		line, err := json.Marshal(withEvent(name, payload))
		if err != nil {
			return fmt.Errorf("encode %s event: %w", name, err)
		}
		line = append(line, '\n')
		if _, err := w.c.Writer.Write(line); err != nil {
			return err
		}
	}
	w.c.Writer.Flush()
	return w.c.Request.Context().Err()
}

// withEvent sets the event discriminator carried inside NDJSON lines. SSE
// names the event in the frame instead.
func withEvent(name string, payload any) any {
	switch p := payload.(type) {
	case *caloriesEvent:
		ev := *p
		ev.Event = name
		return ev
	case *foragingEvent:
		ev := *p
		ev.Event = name
		return ev
	default:
		return payload
	}
}
