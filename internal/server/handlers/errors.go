package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
)

// respondError writes {"detail": ...} with the status matching the error kind.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindInvalid:
		status = http.StatusBadRequest
	case errs.KindConflict:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, gin.H{"detail": "internal server error"})
		return
	}

	logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"detail": err.Error()})
}

// respondBindingError reports a request that does not match the expected shape.
func respondBindingError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request payload", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
}
