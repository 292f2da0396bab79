package tictactoe

import (
	"github.com/lguibr/arbiter/models"
)

// lines enumerates every way to win: three rows, three columns, two diagonals.
var lines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Apply is tic-tac-toe's pure rules transition.
func Apply(state models.GameState, playerID models.PlayerID, move models.MovePayload) (models.GameState, error) {
	s := state.(State)

	if s.Status() != models.StatusInProgress {
		return state, models.ErrGameOver
	}

	mark, ok := s.markOf(playerID)
	if !ok {
		return state, &models.InvalidPlayerError{PlayerID: playerID.String()}
	}
	if mark != s.CurrentMark {
		return state, models.ErrInvalidTurn
	}

	m, ok := move.(Move)
	if !ok {
		return state, models.ErrOutOfBounds
	}
	if m.Row < 0 || m.Row > 2 || m.Col < 0 || m.Col > 2 {
		return state, models.ErrOutOfBounds
	}
	if s.Board[m.Row][m.Col] != Empty {
		return state, models.ErrCellOccupied
	}

	s.Board[m.Row][m.Col] = mark

	if winner := detectWinner(s.Board); winner != Empty {
		s.WinnerMark = winner
	} else if boardFull(s.Board) {
		s.Draw = true
	} else {
		s.CurrentMark = flip(s.CurrentMark)
	}

	return s, nil
}

func detectWinner(board [3][3]Mark) Mark {
	for _, line := range lines {
		a, b, c := board[line[0][0]][line[0][1]], board[line[1][0]][line[1][1]], board[line[2][0]][line[2][1]]
		if a != Empty && a == b && b == c {
			return a
		}
	}
	return Empty
}

func boardFull(board [3][3]Mark) bool {
	for _, row := range board {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

func flip(m Mark) Mark {
	if m == X {
		return O
	}
	return X
}
