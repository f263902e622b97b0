package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"superservice-backend/internal/metrics"
	"superservice-backend/internal/validation"
)

// EchoHandler serves the validated echo endpoint.
type EchoHandler struct {
	logger       *zap.Logger
	maxBodyBytes int64
}

// NewEchoHandler creates a new EchoHandler. Bodies larger than maxBodyBytes
// are rejected as invalid payloads.
func NewEchoHandler(logger *zap.Logger, maxBodyBytes int64) *EchoHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EchoHandler{logger: logger, maxBodyBytes: maxBodyBytes}
}

// Echo handles POST with {"message": "..."} and replies {"ok":true,"echo":...}.
// Preflight requests are answered by the CORS middleware before reaching it.
func (h *EchoHandler) Echo(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		metrics.EchoRequests.WithLabelValues("method_not_allowed").Inc()
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		metrics.EchoRequests.WithLabelValues("invalid").Inc()
		message := "Unable to read request body"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			message = "Request body too large"
		}
		h.logger.Warn("Echo: failed to read body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "Invalid payload",
			Issues: []validation.Issue{{Code: validation.CodeCustom, Path: []string{}, Message: message}},
		})
		return
	}

	message, issues := validation.ParseEchoRequest(body)
	if len(issues) > 0 {
		metrics.EchoRequests.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: "Invalid payload", Issues: issues})
		return
	}

	metrics.EchoRequests.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, EchoResponse{OK: true, Echo: message})
}
