package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/lguibr/arbiter/models"
)

const playerContextKey = "player"

func playerFromContext(c *gin.Context) (models.Player, bool) {
	v, ok := c.Get(playerContextKey)
	if !ok {
		return models.Player{}, false
	}
	player, ok := v.(models.Player)
	return player, ok
}
