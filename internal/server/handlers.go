package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cardscan/internal/export"
	"cardscan/internal/logging"
	"cardscan/internal/reconcile"
	"cardscan/internal/services"
)

// maxImageBytes bounds the accepted photo upload size.
const maxImageBytes = 15 << 20

type overridesRequest struct {
	Foil         *bool  `json:"foil"`
	Signed       *bool  `json:"signed"`
	Condition    string `json:"condition"`
	Language     string `json:"language"`
	SetName      string `json:"set_name"`
	CardmarketID int64  `json:"cardmarket_id"`
}

func (r overridesRequest) toOverrides() reconcile.Overrides {
	return reconcile.Overrides{
		Foil:         r.Foil,
		Signed:       r.Signed,
		Condition:    r.Condition,
		Language:     r.Language,
		SetName:      r.SetName,
		CardmarketID: r.CardmarketID,
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.store.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cards": count, "ws_clients": s.hub.Count()})
}

// handleStartScan accepts the card photo either as a multipart "image" part
// or as the raw request body.
func (s *Server) handleStartScan(c *gin.Context) {
	imageBytes, err := readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := s.pipe.StartCapture(c.Request.Context(), imageBytes)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    services.UserMessage(err),
			"snapshot": snap,
		})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"snapshot": snap})
}

func readImage(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("image"); err == nil {
		if file.Size > maxImageBytes {
			return nil, errors.New("image too large")
		}
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxImageBytes))
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImageBytes))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("image body is empty")
	}
	return data, nil
}

func (s *Server) handleCurrentScan(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"snapshot": s.pipe.Snapshot()})
}

func (s *Server) handleConfirmScan(c *gin.Context) {
	var req overridesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid overrides payload"})
			return
		}
	}

	saved, err := s.pipe.Confirm(c.Request.Context(), req.toOverrides())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": services.UserMessage(err)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": services.UserMessage(err)})
		return
	}

	if err := s.notifier.NotifyScanComplete(c.Request.Context(), saved.Name, saved.SetName); err != nil {
		s.logger.Warn("scan notification failed", logging.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"card": saved})
}

func (s *Server) handleAcknowledge(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"snapshot": s.pipe.AcknowledgeMessage()})
}

func (s *Server) handleDismissScan(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"snapshot": s.pipe.Dismiss()})
}

func (s *Server) handleListCards(c *gin.Context) {
	listed, err := s.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(listed), "items": listed})
}

func (s *Server) handleGetCard(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	card, err := s.store.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, card)
}

func (s *Server) handleEditCard(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req overridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid overrides payload"})
		return
	}

	updated, err := s.gate.FinalizeEdit(c.Request.Context(), id, req.toOverrides())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": services.UserMessage(err)})
		return
	}

	s.pipe.NotifyHistoryChanged()
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteCard(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	s.pipe.NotifyHistoryChanged()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleClearCards(c *gin.Context) {
	if err := s.store.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clear failed"})
		return
	}
	s.pipe.NotifyHistoryChanged()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleExport(c *gin.Context) {
	listed, err := s.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	data := export.Render(listed)
	c.Header("Content-Disposition", `attachment; filename="cards_export.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(data))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
