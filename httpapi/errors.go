package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lguibr/arbiter/actor"
	"github.com/lguibr/arbiter/models"
)

// writeError maps a domain error to a JSON body and HTTP status. Game-model
// errors (wrong turn, game over, ...) map to 404 rather than 400/409,
// matching the literal end-to-end scenarios in §8 ("returns 404 with
// message 'not your turn'"). An Ask timeout maps to 504. Unrecognized
// errors fall through to 500 with a generic body; no internal detail leaks.
func writeError(c *gin.Context, err error) {
	status, msg := classify(err)
	c.JSON(status, gin.H{"error": msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, actor.ErrTimeout):
		return http.StatusGatewayTimeout, "request timed out"

	case errors.Is(err, models.ErrLobbyNotFound),
		errors.Is(err, models.ErrMatchNotFound),
		errors.Is(err, models.ErrInvalidTurn),
		errors.Is(err, models.ErrCellOccupied),
		errors.Is(err, models.ErrOutOfBounds),
		errors.Is(err, models.ErrGameOver):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, models.ErrAlreadyJoined),
		errors.Is(err, models.ErrNotJoinable),
		errors.Is(err, models.ErrLobbyFull),
		errors.Is(err, models.ErrNotHost),
		errors.Is(err, models.ErrUnsupportedGame):
		return http.StatusBadRequest, err.Error()

	default:
		var invalidPlayer *models.InvalidPlayerError
		if errors.As(err, &invalidPlayer) {
			return http.StatusNotFound, invalidPlayer.Error()
		}
		return http.StatusInternalServerError, "internal server error"
	}
}

// unexpectedResponse is the 500 fallback for a Supervisor reply type the
// handler did not expect — observable and tested per §6.
func unexpectedResponse(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected response"})
}
