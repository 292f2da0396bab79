// Package httpapi is the HTTP adapter named in §2: authentication, request
// parsing, and turning each request into a bounded Ask against the
// Supervisor. It never branches on game type beyond resolving a
// module.Bundle from the registry.
package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lguibr/arbiter/actor"
	"github.com/lguibr/arbiter/auth"
	"github.com/lguibr/arbiter/module"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// askTimeout bounds every Supervisor ask issued from the HTTP boundary,
// per §5's "each ask has a bounded timeout, default 3 seconds".
const askTimeout = 3 * time.Second

// NewRouter builds the complete gin.Engine: middleware, health check, and
// every endpoint in §6's table.
func NewRouter(engine *actor.Engine, supervisorPID *actor.PID, issuer *auth.Issuer, registry *module.Registry, serviceName string) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware(serviceName))
	r.Use(DevCORS())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	r.POST("/auth/token", IssueTokenHandler(issuer))

	protected := r.Group("/")
	protected.Use(RequireAuth(issuer))
	protected.GET("/auth/whoami", WhoAmIHandler())
	protected.POST("/lobby/create/:gameType", CreateLobbyHandler(engine, supervisorPID))
	protected.POST("/lobby/:gameId/join", JoinLobbyHandler(engine, supervisorPID))
	protected.POST("/lobby/:gameId/leave", LeaveLobbyHandler(engine, supervisorPID))
	protected.POST("/lobby/:gameId/start", StartGameHandler(engine, supervisorPID))
	protected.POST("/:gameType/:gameId/move", MakeMoveHandler(engine, supervisorPID, registry))

	r.GET("/lobby/list", ListLobbiesHandler(engine, supervisorPID))
	r.GET("/lobby/:gameId", GetLobbyHandler(engine, supervisorPID))
	r.GET("/:gameType/:gameId/status", GetGameStatusHandler(engine, supervisorPID, registry))

	return r
}
