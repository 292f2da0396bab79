package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lguibr/arbiter/auth"
	"github.com/lguibr/arbiter/models"
)

type tokenRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueTokenHandler implements POST /auth/token. A caller-supplied id is
// honored (so a returning client can keep its identity); omitting it mints
// a fresh one.
func IssueTokenHandler(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		playerID := models.NewPlayerID()
		if req.ID != "" {
			id, err := models.ParseID(req.ID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
				return
			}
			playerID = id
		}

		token, err := issuer.Issue(models.Player{ID: playerID, Name: req.Name})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
			return
		}

		c.JSON(http.StatusOK, tokenResponse{Token: token})
	}
}

// WhoAmIHandler implements GET /auth/whoami.
func WhoAmIHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		player, ok := playerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, player)
	}
}
