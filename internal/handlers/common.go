package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"clinic-app-server/internal/services"
	"clinic-app-server/internal/utils"
)

// respondDomainError maps a domain error kind to an HTTP status. The
// boundary branches on the kind, never on message text; only internal
// errors have their detail withheld from the client.
func respondDomainError(c *gin.Context, err error) {
	var domainErr *services.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case services.KindConflict:
			utils.Error(c, http.StatusConflict, domainErr.Message)
		case services.KindInvalidInput, services.KindInactiveActor:
			utils.BadRequest(c, domainErr.Message)
		case services.KindNotFound:
			utils.NotFound(c, domainErr.Message)
		default:
			log.Error().Err(domainErr.Err).Str("path", c.FullPath()).Msg("unexpected error")
			utils.InternalServerError(c, "an unexpected error occurred")
		}
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected error")
	utils.InternalServerError(c, "an unexpected error occurred")
}
