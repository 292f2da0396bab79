package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lguibr/arbiter/actor"
	"github.com/lguibr/arbiter/models"
)

// CreateLobbyHandler implements POST /lobby/create/{gameType}.
func CreateLobbyHandler(engine *actor.Engine, supervisorPID *actor.PID) gin.HandlerFunc {
	return func(c *gin.Context) {
		player, _ := playerFromContext(c)

		gt, ok := models.ParseGameType(c.Param("gameType"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnsupportedGame.Error()})
			return
		}

		reply, err := engine.Ask(supervisorPID, models.CreateLobby{GameType: gt, Host: player}, askTimeout)
		if err != nil {
			writeError(c, err)
			return
		}
		switch v := reply.(type) {
		case models.LobbyCreated:
			c.JSON(http.StatusOK, v)
		case models.ErrorResponse:
			writeError(c, v)
		default:
			unexpectedResponse(c)
		}
	}
}

// JoinLobbyHandler implements POST /lobby/{gameId}/join.
func JoinLobbyHandler(engine *actor.Engine, supervisorPID *actor.PID) gin.HandlerFunc {
	return func(c *gin.Context) {
		player, _ := playerFromContext(c)

		gameID, err := models.ParseID(c.Param("gameId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
			return
		}

		reply, err := engine.Ask(supervisorPID, models.JoinLobby{GameID: gameID, Player: player}, askTimeout)
		if err != nil {
			writeError(c, err)
			return
		}
		switch v := reply.(type) {
		case models.LobbyJoined:
			c.JSON(http.StatusOK, v)
		case models.ErrorResponse:
			status := http.StatusBadRequest
			if v.Message == models.ErrLobbyNotFound.Error() {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": v.Message})
		default:
			unexpectedResponse(c)
		}
	}
}

// LeaveLobbyHandler implements POST /lobby/{gameId}/leave.
func LeaveLobbyHandler(engine *actor.Engine, supervisorPID *actor.PID) gin.HandlerFunc {
	return func(c *gin.Context) {
		player, _ := playerFromContext(c)

		gameID, err := models.ParseID(c.Param("gameId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
			return
		}

		reply, err := engine.Ask(supervisorPID, models.LeaveLobby{GameID: gameID, Player: player}, askTimeout)
		if err != nil {
			writeError(c, err)
			return
		}
		switch v := reply.(type) {
		case models.LobbyLeft:
			c.JSON(http.StatusOK, v)
		case models.ErrorResponse:
			c.JSON(http.StatusNotFound, gin.H{"error": v.Message})
		default:
			unexpectedResponse(c)
		}
	}
}

// StartGameHandler implements POST /lobby/{gameId}/start.
func StartGameHandler(engine *actor.Engine, supervisorPID *actor.PID) gin.HandlerFunc {
	return func(c *gin.Context) {
		player, _ := playerFromContext(c)

		gameID, err := models.ParseID(c.Param("gameId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
			return
		}

		reply, err := engine.Ask(supervisorPID, models.StartGame{GameID: gameID, CallerID: player.ID}, askTimeout)
		if err != nil {
			writeError(c, err)
			return
		}
		switch v := reply.(type) {
		case models.GameStarted:
			c.JSON(http.StatusOK, v)
		case models.ErrorResponse:
			status := http.StatusBadRequest
			if v.Message == models.ErrMatchNotFound.Error() {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": v.Message})
		default:
			unexpectedResponse(c)
		}
	}
}

// GetLobbyHandler implements GET /lobby/{gameId}. Unauthenticated.
func GetLobbyHandler(engine *actor.Engine, supervisorPID *actor.PID) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID, err := models.ParseID(c.Param("gameId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
			return
		}

		reply, err := engine.Ask(supervisorPID, models.GetLobbyInfo{GameID: gameID}, askTimeout)
		if err != nil {
			writeError(c, err)
			return
		}
		switch v := reply.(type) {
		case models.LobbyInfo:
			c.JSON(http.StatusOK, v.Lobby)
		case models.ErrorResponse:
			c.JSON(http.StatusNotFound, gin.H{"error": v.Message})
		default:
			unexpectedResponse(c)
		}
	}
}

// ListLobbiesHandler implements GET /lobby/list. Unauthenticated.
func ListLobbiesHandler(engine *actor.Engine, supervisorPID *actor.PID) gin.HandlerFunc {
	return func(c *gin.Context) {
		reply, err := engine.Ask(supervisorPID, models.ListLobbies{}, askTimeout)
		if err != nil {
			writeError(c, err)
			return
		}
		listed, ok := reply.(models.LobbiesListed)
		if !ok {
			unexpectedResponse(c)
			return
		}
		lobbies := listed.Lobbies
		if lobbies == nil {
			lobbies = []models.LobbyMetadata{}
		}
		c.JSON(http.StatusOK, lobbies)
	}
}
