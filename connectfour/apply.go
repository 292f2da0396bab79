package connectfour

import "github.com/lguibr/arbiter/models"

// Apply is Connect Four's pure rules transition: a disc falls to the lowest
// open row of the chosen column.
func Apply(state models.GameState, playerID models.PlayerID, move models.MovePayload) (models.GameState, error) {
	s := state.(State)

	if s.Status() != models.StatusInProgress {
		return state, models.ErrGameOver
	}

	disc, ok := s.discOf(playerID)
	if !ok {
		return state, &models.InvalidPlayerError{PlayerID: playerID.String()}
	}
	if disc != s.CurrentDisc {
		return state, models.ErrInvalidTurn
	}

	m, ok := move.(Move)
	if !ok || m.Column < 0 || m.Column >= cols {
		return state, models.ErrOutOfBounds
	}

	row := lowestOpenRow(s.Board, m.Column)
	if row < 0 {
		return state, models.ErrOutOfBounds
	}

	s.Board[row][m.Column] = disc

	if hasConnectFour(s.Board, row, m.Column, disc) {
		s.WinnerDisc = disc
	} else if boardFull(s.Board) {
		s.Draw = true
	} else {
		s.CurrentDisc = flip(s.CurrentDisc)
	}

	return s, nil
}

func lowestOpenRow(board [rows][cols]Disc, col int) int {
	for r := rows - 1; r >= 0; r-- {
		if board[r][col] == Empty {
			return r
		}
	}
	return -1
}

func boardFull(board [rows][cols]Disc) bool {
	for c := 0; c < cols; c++ {
		if board[0][c] == Empty {
			return false
		}
	}
	return true
}

func flip(d Disc) Disc {
	if d == Red {
		return Yellow
	}
	return Red
}

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// hasConnectFour checks all four axes through the just-played cell for four
// consecutive discs of the same color.
func hasConnectFour(board [rows][cols]Disc, row, col int, disc Disc) bool {
	for _, d := range directions {
		count := 1
		count += countDirection(board, row, col, d[0], d[1], disc)
		count += countDirection(board, row, col, -d[0], -d[1], disc)
		if count >= 4 {
			return true
		}
	}
	return false
}

func countDirection(board [rows][cols]Disc, row, col, dr, dc int, disc Disc) int {
	count := 0
	r, c := row+dr, col+dc
	for r >= 0 && r < rows && c >= 0 && c < cols && board[r][c] == disc {
		count++
		r += dr
		c += dc
	}
	return count
}
