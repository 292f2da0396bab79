package models

// Messages exchanged with the PersistenceWorker. It deals only in raw,
// pre/post-encoded payload strings — decoding into a concrete GameState is
// the caller's job (the MatchWorker, or the Supervisor during restore),
// using the module registry's codec for the row's game type.

// LoadSnapshot asks the PersistenceWorker to fetch one row's raw payload.
type LoadSnapshot struct {
	GameID       GameID
	ExpectedType string
}

// SnapshotLoaded replies to LoadSnapshot. Found is false when the row is
// absent or its game_type does not match ExpectedType.
type SnapshotLoaded struct {
	GameID  GameID
	Payload string
	Found   bool
	Err     error
}

// SaveSnapshot asks the PersistenceWorker to upsert one row. Sent
// fire-and-forget from the MatchWorker's move path — ack precedes durability.
type SaveSnapshot struct {
	GameID   GameID
	GameType string
	Payload  string
}

// SnapshotSaved replies to SaveSnapshot, sent back to its sender: the
// MatchWorker after a move, or the Supervisor after StartGame. Both only
// log a failure; it never changes game or lobby state.
type SnapshotSaved struct {
	GameID GameID
	Err    error
}

// LoadAllSnapshots asks the PersistenceWorker to replay every row that
// Repository.LoadAll returns (rows with a malformed game_id are already
// skipped there; type and payload are not yet checked).
type LoadAllSnapshots struct{}

// AllSnapshotsLoaded replies to LoadAllSnapshots.
type AllSnapshotsLoaded struct {
	Rows []SnapshotRow
	Err  error
}

// SnapshotRow is one raw row as stored; the caller still has to recognize
// GameType and decode Payload before trusting it.
type SnapshotRow struct {
	GameID   GameID
	GameType string
	Payload  string
}
