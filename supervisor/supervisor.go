// Package supervisor implements the orchestration worker: the single owner
// of the lobby table and the live-match index. It is the only component
// that mutates either, and the only place a GameType branches into the
// module registry rather than into bespoke per-game logic.
package supervisor

import (
	"log"
	"runtime/debug"
	"time"

	"github.com/lguibr/arbiter/actor"
	"github.com/lguibr/arbiter/match"
	"github.com/lguibr/arbiter/models"
	"github.com/lguibr/arbiter/module"
)

// stashLimit bounds how many commands can queue up while the supervisor is
// still Initializing. Overflowing it means restore is stuck or the registry
// is missing a module the stored snapshots need — a configuration problem,
// not a load spike, so it is fatal rather than dropped silently.
const stashLimit = 128

// askTimeout bounds the supervisor's own (synchronous, from its point of
// view) ask into a MatchWorker while handling RunGameOperation.
const askTimeout = 3 * time.Second

// matchEntry is what the supervisor remembers about one live match: enough
// to route RunGameOperation without knowing anything about its rules.
type matchEntry struct {
	gameType string
	pid      *actor.PID
}

// Supervisor is the actor. It starts Initializing, sends LoadAllSnapshots to
// the PersistenceWorker on Started, and becomes Running exactly once, when
// the AllSnapshotsLoaded reply arrives.
type Supervisor struct {
	engine         *actor.Engine
	registry       *module.Registry
	persistencePID *actor.PID
	self           *actor.PID

	lobbies map[models.GameID]*models.LobbyMetadata
	matches map[models.GameID]matchEntry

	running bool
	stash   []stashedMessage
}

type stashedMessage struct {
	ctx actor.Context
}

// NewProducer builds a Producer for the Supervisor. persistencePID must name
// an already-spawned PersistenceWorker.
func NewProducer(registry *module.Registry, persistencePID *actor.PID) actor.Producer {
	return func() actor.Actor {
		return &Supervisor{
			registry:       registry,
			persistencePID: persistencePID,
			lobbies:        make(map[models.GameID]*models.LobbyMetadata),
			matches:        make(map[models.GameID]matchEntry),
		}
	}
}

func (s *Supervisor) Receive(ctx actor.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("supervisor: panicked: %v\n%s", r, string(debug.Stack()))
			if ctx.RequestID() != "" {
				ctx.Reply(models.ErrorResponse{Message: "internal error"})
			}
		}
	}()

	if s.self == nil {
		s.self = ctx.Self()
	}
	if s.engine == nil {
		s.engine = ctx.Engine()
	}

	if _, ok := ctx.Message().(actor.Started); ok {
		s.engine.Send(s.persistencePID, models.LoadAllSnapshots{}, s.self)
		return
	}

	if rows, ok := ctx.Message().(models.AllSnapshotsLoaded); ok {
		s.handleRestore(rows)
		return
	}

	if !s.running {
		if len(s.stash) >= stashLimit {
			log.Fatalf("supervisor: stash overflow (>%d commands buffered while still Initializing) — restore is stuck", stashLimit)
		}
		s.stash = append(s.stash, stashedMessage{ctx: ctx})
		return
	}

	s.dispatch(ctx)
}

// handleRestore consumes the PersistenceWorker's AllSnapshotsLoaded reply,
// spawns a MatchWorker per recognized, decodable row, then transitions to
// Running and replays everything buffered while Initializing. Lobbies are
// never restored — only in-progress matches (§4.5).
func (s *Supervisor) handleRestore(msg models.AllSnapshotsLoaded) {
	if msg.Err != nil {
		log.Printf("supervisor: restore failed, starting with no matches: %v", msg.Err)
	}

	for _, row := range msg.Rows {
		bundle, ok := s.registry.Lookup(row.GameType)
		if !ok {
			log.Printf("supervisor: skipping snapshot %s: unregistered game type %q", row.GameID, row.GameType)
			continue
		}
		state, err := bundle.DecodeState(row.Payload)
		if err != nil {
			log.Printf("supervisor: skipping snapshot %s: %v", row.GameID, err)
			continue
		}

		pid := s.engine.Spawn(actor.NewProps(match.NewProducer(row.GameID, bundle, state, s.persistencePID, s.self)))
		if pid == nil {
			log.Printf("supervisor: failed to spawn worker for restored match %s", row.GameID)
			continue
		}
		s.matches[row.GameID] = matchEntry{gameType: row.GameType, pid: pid}
	}

	log.Printf("supervisor: restored %d match(es); now Running", len(s.matches))
	s.running = true

	stashed := s.stash
	s.stash = nil
	for _, sm := range stashed {
		s.dispatch(sm.ctx)
	}
}

// dispatch handles a Running-state command. Exactly one command type per
// invocation; replies are delivered via actor.Respond so both Ask and
// fire-and-forget-with-sender callers are served uniformly.
func (s *Supervisor) dispatch(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case models.CreateLobby:
		s.handleCreateLobby(ctx, msg)
	case models.JoinLobby:
		s.handleJoinLobby(ctx, msg)
	case models.LeaveLobby:
		s.handleLeaveLobby(ctx, msg)
	case models.StartGame:
		s.handleStartGame(ctx, msg)
	case models.ListLobbies:
		s.handleListLobbies(ctx)
	case models.GetLobbyInfo:
		s.handleGetLobbyInfo(ctx, msg)
	case models.RunGameOperation:
		s.handleRunGameOperation(ctx, msg)
	case models.GameCompleted:
		s.handleGameCompleted(msg)
	case models.SnapshotSaved:
		// reply to the initial save sent by handleStartGame; observation-only.
		if msg.Err != nil {
			log.Printf("supervisor: initial save for %s failed: %v", msg.GameID, msg.Err)
		}
	case actor.Stopping, actor.Stopped:
	default:
		log.Printf("supervisor: received unknown message type %T", msg)
		if ctx.RequestID() != "" {
			ctx.Reply(models.ErrorResponse{Message: "unknown command"})
		}
	}
}

func (s *Supervisor) handleCreateLobby(ctx actor.Context, msg models.CreateLobby) {
	gameID := models.NewGameID()
	s.lobbies[gameID] = models.NewLobby(gameID, msg.GameType.Tag, msg.Host)
	actor.Respond(ctx, models.LobbyCreated{GameID: gameID, Host: msg.Host})
}

func (s *Supervisor) handleJoinLobby(ctx actor.Context, msg models.JoinLobby) {
	lobby, ok := s.lobbies[msg.GameID]
	if !ok {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrLobbyNotFound.Error()})
		return
	}
	if !lobby.Status.Joinable() {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrNotJoinable.Error()})
		return
	}
	if _, already := lobby.Players[msg.Player.ID]; already {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrAlreadyJoined.Error()})
		return
	}
	gt, ok := models.ParseGameType(lobby.GameType)
	if !ok {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrUnsupportedGame.Error()})
		return
	}
	if len(lobby.Players) >= gt.MaxPlayers {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrLobbyFull.Error()})
		return
	}

	lobby.Join(msg.Player, gt)
	actor.Respond(ctx, models.LobbyJoined{GameID: msg.GameID, Lobby: lobby.Snapshot(), Player: msg.Player})
}

func (s *Supervisor) handleLeaveLobby(ctx actor.Context, msg models.LeaveLobby) {
	lobby, ok := s.lobbies[msg.GameID]
	if !ok {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrLobbyNotFound.Error()})
		return
	}

	gt, _ := models.ParseGameType(lobby.GameType)
	wasHost := lobby.Leave(msg.Player.ID, gt)

	reason := "left lobby"
	if wasHost {
		reason = "host left"
	}
	actor.Respond(ctx, models.LobbyLeft{GameID: msg.GameID, Reason: reason})
}

func (s *Supervisor) handleStartGame(ctx actor.Context, msg models.StartGame) {
	lobby, ok := s.lobbies[msg.GameID]
	if !ok {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrMatchNotFound.Error()})
		return
	}
	if lobby.HostID != msg.CallerID || lobby.Status != models.ReadyToStart {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrNotHost.Error()})
		return
	}
	bundle, ok := s.registry.Lookup(lobby.GameType)
	if !ok {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrUnsupportedGame.Error()})
		return
	}

	players := lobby.OrderedPlayers()
	state, err := match.NewInitialState(bundle, players)
	if err != nil {
		actor.Respond(ctx, models.ErrorResponse{Message: err.Error()})
		return
	}

	pid := s.engine.Spawn(actor.NewProps(match.NewProducer(msg.GameID, bundle, state, s.persistencePID, s.self)))
	if pid == nil {
		actor.Respond(ctx, models.ErrorResponse{Message: "failed to start match"})
		return
	}

	payload, encErr := bundle.EncodeState(state)
	if encErr != nil {
		log.Printf("supervisor: failed to encode initial state for %s: %v", msg.GameID, encErr)
	} else {
		s.engine.Send(s.persistencePID, models.SaveSnapshot{GameID: msg.GameID, GameType: lobby.GameType, Payload: payload}, s.self)
	}

	s.matches[msg.GameID] = matchEntry{gameType: lobby.GameType, pid: pid}
	lobby.Status = models.InProgress
	actor.Respond(ctx, models.GameStarted{GameID: msg.GameID})
}

func (s *Supervisor) handleListLobbies(ctx actor.Context) {
	var out []models.LobbyMetadata
	for _, lobby := range s.lobbies {
		if lobby.Status.Joinable() {
			out = append(out, lobby.Snapshot())
		}
	}
	actor.Respond(ctx, models.LobbiesListed{Lobbies: out})
}

func (s *Supervisor) handleGetLobbyInfo(ctx actor.Context, msg models.GetLobbyInfo) {
	lobby, ok := s.lobbies[msg.GameID]
	if !ok {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrLobbyNotFound.Error()})
		return
	}
	actor.Respond(ctx, models.LobbyInfo{Lobby: lobby.Snapshot()})
}

func (s *Supervisor) handleGameCompleted(msg models.GameCompleted) {
	lobby, ok := s.lobbies[msg.GameID]
	if !ok {
		// The match may have been restored from a snapshot with no lobby
		// (§9: restore restores matches, not lobbies). Nothing to update.
		return
	}
	lobby.Status = msg.Status
}

// handleRunGameOperation is the adapter named in §9: it asks the worker
// synchronously — legitimate because "match creation is synchronous from
// the supervisor's point of view" (§5) extends to routing a live
// operation through it — and translates the worker's raw reply into the
// generic GameStatus/ErrorResponse union before forwarding.
func (s *Supervisor) handleRunGameOperation(ctx actor.Context, msg models.RunGameOperation) {
	entry, ok := s.matches[msg.GameID]
	if !ok {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrMatchNotFound.Error()})
		return
	}
	if msg.GameType != "" && msg.GameType != entry.gameType {
		actor.Respond(ctx, models.ErrorResponse{Message: models.ErrMatchNotFound.Error()})
		return
	}

	reply, err := s.engine.Ask(entry.pid, msg.Op, askTimeout)
	if err != nil {
		actor.Respond(ctx, models.ErrorResponse{Message: err.Error()})
		return
	}

	switch v := reply.(type) {
	case error:
		actor.Respond(ctx, models.ErrorResponse{Message: v.Error()})
	default:
		actor.Respond(ctx, models.GameStatus{View: v})
	}
}
