package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lguibr/arbiter/actor"
	"github.com/lguibr/arbiter/auth"
	"github.com/lguibr/arbiter/connectfour"
	"github.com/lguibr/arbiter/models"
	"github.com/lguibr/arbiter/module"
	"github.com/lguibr/arbiter/supervisor"
	"github.com/lguibr/arbiter/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPersistence answers LoadAllSnapshots empty and ignores saves, so
// router tests exercise real Supervisor/MatchWorker wiring without SQLite.
type stubPersistence struct{}

func (p *stubPersistence) Receive(ctx actor.Context) {
	if _, ok := ctx.Message().(models.LoadAllSnapshots); ok {
		actor.Respond(ctx, models.AllSnapshotsLoaded{})
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *auth.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := actor.NewEngine()
	persistencePID := engine.Spawn(actor.NewProps(func() actor.Actor { return &stubPersistence{} }))

	reg := module.NewRegistry()
	tictactoe.Register(reg)
	connectfour.Register(reg)

	supPID := engine.Spawn(actor.NewProps(supervisor.NewProducer(reg, persistencePID)))
	t.Cleanup(func() { engine.Shutdown(time.Second) })
	time.Sleep(20 * time.Millisecond)

	issuer := auth.NewIssuer("test-secret")
	return NewRouter(engine, supPID, issuer, reg, "arbiter-test"), issuer
}

func issueToken(t *testing.T, r *gin.Engine, name string) string {
	t.Helper()
	body := `{"name":"` + name + `"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWhoAmIRejectsMissingToken(t *testing.T) {
	r, _ := setupRouter(t)
	w := doJSON(r, http.MethodGet, "/auth/whoami", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWhoAmIReturnsIdentity(t *testing.T) {
	r, _ := setupRouter(t)
	token := issueToken(t, r, "alice")

	w := doJSON(r, http.MethodGet, "/auth/whoami", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var player models.Player
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &player))
	assert.Equal(t, "alice", player.Name)
}

func TestHappyPathCreateJoinStartMove(t *testing.T) {
	r, _ := setupRouter(t)
	aliceToken := issueToken(t, r, "alice")
	bobToken := issueToken(t, r, "bob")

	created := doJSON(r, http.MethodPost, "/lobby/create/tictactoe", aliceToken, "")
	require.Equal(t, http.StatusOK, created.Code)
	var lc models.LobbyCreated
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &lc))

	gameID := lc.GameID.String()

	joined := doJSON(r, http.MethodPost, "/lobby/"+gameID+"/join", bobToken, "")
	require.Equal(t, http.StatusOK, joined.Code)
	var lj models.LobbyJoined
	require.NoError(t, json.Unmarshal(joined.Body.Bytes(), &lj))
	assert.Equal(t, models.ReadyToStart, lj.Lobby.Status)

	started := doJSON(r, http.MethodPost, "/lobby/"+gameID+"/start", aliceToken, "")
	require.Equal(t, http.StatusOK, started.Code)

	move := doJSON(r, http.MethodPost, "/tictactoe/"+gameID+"/move", aliceToken, `{"row":0,"col":0}`)
	require.Equal(t, http.StatusOK, move.Code)
	var view tictactoe.View
	require.NoError(t, json.Unmarshal(move.Body.Bytes(), &view))
	assert.Equal(t, "X", view.Board[0][0])
	assert.Equal(t, "O", view.CurrentPlayer)

	wrongTurn := doJSON(r, http.MethodPost, "/tictactoe/"+gameID+"/move", aliceToken, `{"row":1,"col":1}`)
	assert.Equal(t, http.StatusNotFound, wrongTurn.Code)

	status := doJSON(r, http.MethodGet, "/tictactoe/"+gameID+"/status", "", "")
	require.Equal(t, http.StatusOK, status.Code)
}

func TestJoinUnknownLobbyReturns404(t *testing.T) {
	r, _ := setupRouter(t)
	token := issueToken(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/lobby/"+models.NewGameID().String()+"/join", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveOnUnknownGameTypeReturns400(t *testing.T) {
	r, _ := setupRouter(t)
	token := issueToken(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/chess/"+models.NewGameID().String()+"/move", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
