package httpapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lguibr/arbiter/actor"
	"github.com/lguibr/arbiter/models"
	"github.com/lguibr/arbiter/module"
)

// MakeMoveHandler implements POST /{gameType}/{gameId}/move. It never
// branches on which game is being played — moveDecoder comes entirely from
// the module registered for the path's gameType (§4.6).
func MakeMoveHandler(engine *actor.Engine, supervisorPID *actor.PID, registry *module.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		player, _ := playerFromContext(c)

		gt, ok := models.ParseGameType(c.Param("gameType"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnsupportedGame.Error()})
			return
		}
		bundle, ok := registry.Lookup(gt.Tag)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnsupportedGame.Error()})
			return
		}

		gameID, err := models.ParseID(c.Param("gameId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
			return
		}

		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		move, err := bundle.DecodeMove(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		op := models.RunGameOperation{
			GameID:   gameID,
			GameType: gt.Tag,
			Op:       models.MakeMove{PlayerID: player.ID, Payload: move},
		}
		respondGameStatus(c, engine, supervisorPID, op)
	}
}

// GetGameStatusHandler implements GET /{gameType}/{gameId}/status. Unauthenticated.
func GetGameStatusHandler(engine *actor.Engine, supervisorPID *actor.PID, registry *module.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		gt, ok := models.ParseGameType(c.Param("gameType"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnsupportedGame.Error()})
			return
		}
		if _, ok := registry.Lookup(gt.Tag); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnsupportedGame.Error()})
			return
		}

		gameID, err := models.ParseID(c.Param("gameId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
			return
		}

		op := models.RunGameOperation{GameID: gameID, GameType: gt.Tag, Op: models.GetState{}}
		respondGameStatus(c, engine, supervisorPID, op)
	}
}

func respondGameStatus(c *gin.Context, engine *actor.Engine, supervisorPID *actor.PID, op models.RunGameOperation) {
	reply, err := engine.Ask(supervisorPID, op, askTimeout)
	if err != nil {
		writeError(c, err)
		return
	}
	switch v := reply.(type) {
	case models.GameStatus:
		c.JSON(http.StatusOK, v.View)
	case models.ErrorResponse:
		c.JSON(http.StatusNotFound, gin.H{"error": v.Message})
	default:
		unexpectedResponse(c)
	}
}
