package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ucalc/internal/api/dto"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/tracing"
)

func (h *Handlers) respondError(c *gin.Context, err error) {
	status, _ := dto.Classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		h.logger.Error("request failed",
			append(tracing.Fields(c.Request.Context()),
				zap.String("path", c.FullPath()),
				zap.Error(err))...)
	}
	c.JSON(status, dto.NewError(err))
}
