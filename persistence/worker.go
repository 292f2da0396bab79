// Package persistence implements the PersistenceWorker: a request/reply
// endpoint wrapping the Repository so no caller ever blocks on I/O itself.
package persistence

import (
	"context"
	"log"
	"runtime/debug"

	"github.com/lguibr/arbiter/actor"
	"github.com/lguibr/arbiter/models"
	"github.com/lguibr/arbiter/repository"
	"golang.org/x/sync/semaphore"
)

// defaultPoolSize bounds how many Repository calls this worker runs
// concurrently. The spec allows parallelizing behind the mailbox since
// there is no cross-game ordering requirement; a single slow save must not
// head-of-line-block an unrelated load.
const defaultPoolSize = 4

// Worker is the PersistenceWorker actor.
type Worker struct {
	repo repository.Repository
	sem  *semaphore.Weighted
	self *actor.PID
}

// NewProducer builds a Producer for the PersistenceWorker around repo, with
// at most poolSize concurrent Repository calls in flight.
func NewProducer(repo repository.Repository, poolSize int) actor.Producer {
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	return func() actor.Actor {
		return &Worker{repo: repo, sem: semaphore.NewWeighted(int64(poolSize))}
	}
}

func (w *Worker) Receive(ctx actor.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("persistence: %s panicked: %v\n%s", w.self, r, string(debug.Stack()))
		}
	}()

	if w.self == nil {
		w.self = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case actor.Started:
		if err := w.repo.Init(context.Background()); err != nil {
			log.Printf("persistence: init failed: %v", err)
		}

	case models.SaveSnapshot:
		w.runBounded(func() {
			err := w.repo.Save(context.Background(), msg.GameID, msg.GameType, msg.Payload)
			if err != nil {
				log.Printf("persistence: save %s failed: %v", msg.GameID, err)
			}
			actor.Respond(ctx, models.SnapshotSaved{GameID: msg.GameID, Err: err})
		})

	case models.LoadSnapshot:
		w.runBounded(func() {
			payload, found, err := w.repo.Load(context.Background(), msg.GameID, msg.ExpectedType)
			if err != nil {
				log.Printf("persistence: load %s failed: %v", msg.GameID, err)
			}
			actor.Respond(ctx, models.SnapshotLoaded{GameID: msg.GameID, Payload: payload, Found: found, Err: err})
		})

	case models.LoadAllSnapshots:
		w.runBounded(func() {
			rows, err := w.repo.LoadAll(context.Background())
			if err != nil {
				log.Printf("persistence: loadAll failed: %v", err)
				actor.Respond(ctx, models.AllSnapshotsLoaded{Err: err})
				return
			}
			out := make([]models.SnapshotRow, 0, len(rows))
			for _, r := range rows {
				out = append(out, models.SnapshotRow{GameID: r.GameID, GameType: r.GameType, Payload: r.Payload})
			}
			actor.Respond(ctx, models.AllSnapshotsLoaded{Rows: out})
		})

	case actor.Stopping, actor.Stopped:
		// nothing to release; the *sql.DB is owned by whoever constructed it.

	default:
		log.Printf("persistence: %s received unknown message type %T", w.self, msg)
	}
}

// runBounded hands fn to a goroutine gated by the pool's semaphore, so the
// actor's own mailbox loop is never blocked waiting on I/O. The reply is
// always delivered asynchronously via actor.Respond from inside fn.
func (w *Worker) runBounded(fn func()) {
	go func() {
		if err := w.sem.Acquire(context.Background(), 1); err != nil {
			return
		}
		defer w.sem.Release(1)
		fn()
	}()
}
