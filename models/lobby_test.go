package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPlayerType() GameType {
	return GameType{Tag: "lobbytest", MinPlayers: 2, MaxPlayers: 2}
}

func TestLeaveByHostCancelsWaitingLobby(t *testing.T) {
	host := Player{ID: NewPlayerID(), Name: "host"}
	lobby := NewLobby(NewGameID(), "lobbytest", host)

	wasHost := lobby.Leave(host.ID, twoPlayerType())
	require.True(t, wasHost)
	assert.Equal(t, Cancelled, lobby.Status)
}

func TestLeaveByHostDoesNotCancelInProgressLobby(t *testing.T) {
	host := Player{ID: NewPlayerID(), Name: "host"}
	lobby := NewLobby(NewGameID(), "lobbytest", host)
	lobby.Status = InProgress

	wasHost := lobby.Leave(host.ID, twoPlayerType())
	require.True(t, wasHost)
	assert.Equal(t, InProgress, lobby.Status, "a terminal or in-progress lobby must not be overwritten by a host leave")
}

func TestLeaveByHostDoesNotReviveTerminalLobby(t *testing.T) {
	host := Player{ID: NewPlayerID(), Name: "host"}
	lobby := NewLobby(NewGameID(), "lobbytest", host)
	lobby.Status = Completed

	wasHost := lobby.Leave(host.ID, twoPlayerType())
	require.True(t, wasHost)
	assert.Equal(t, Completed, lobby.Status, "a terminal status must never transition out")
}

func TestLeaveByNonHostRecomputesReadiness(t *testing.T) {
	host := Player{ID: NewPlayerID(), Name: "host"}
	guest := Player{ID: NewPlayerID(), Name: "guest"}
	lobby := NewLobby(NewGameID(), "lobbytest", host)
	gt := twoPlayerType()
	lobby.Join(guest, gt)
	require.Equal(t, ReadyToStart, lobby.Status)

	wasHost := lobby.Leave(guest.ID, gt)
	assert.False(t, wasHost)
	assert.Equal(t, WaitingForPlayers, lobby.Status)
}
