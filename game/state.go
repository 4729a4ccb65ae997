package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"geister/utils"
)

// Phase is the state of the turn machine.
type Phase int

const (
	AwaitingFirstPlayerChoice Phase = iota
	AwaitingOpponentMove
	AutomatedSideToMove
	AwaitingCapturedPieceColor
	Won
	Lost
)

var phaseNames = []string{
	"awaiting_first_player_choice",
	"awaiting_opponent_move",
	"automated_side_to_move",
	"awaiting_captured_piece_color",
	"won",
	"lost",
}

func (p Phase) String() string {
	if p < AwaitingFirstPlayerChoice || p > Lost {
		return "unknown"
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	i := utils.FindIndex(phaseNames, string(text))
	if i < 0 {
		return fmt.Errorf("unknown phase %q", text)
	}
	*p = Phase(i)
	return nil
}

// IsTerminal reports whether the phase accepts no further transitions.
func (p Phase) IsTerminal() bool {
	return p == Won || p == Lost
}

type StateHash uint64

// Game is the whole aggregate that gets snapshotted for undo.
type Game struct {
	Players     [2]Player `json:"players"`
	Phase       Phase     `json:"phase"`
	FirstPlayer PlayerID  `json:"first_player"`
	LastMove    *Move     `json:"last_move,omitempty"`
	MovesPlayed int       `json:"moves_played"`

	// Piece awaiting color disclosure
	LastCaptured PieceRef `json:"last_captured"`
	// Lowest estimate the automated side may capture
	CaptureThreshold float64 `json:"capture_threshold"`
}

// NewGame returns a game in the starting layout:
//
//	 012345
//	0 ????    opponent
//	1 ????
//	2
//	3
//	4 rrrr    self
//	5 bbbb
func NewGame() *Game {
	g := &Game{
		Phase:            AwaitingFirstPlayerChoice,
		FirstPlayer:      Self,
		LastCaptured:     NoPiece,
		CaptureThreshold: CaptureAnyNotRed,
	}
	g.Players[Self].ID = Self
	g.Players[Opponent].ID = Opponent
	for i := 0; i < MaxPieces/2; i++ {
		g.Players[Self].Pieces[i] = NewPiece(i+1, 4, Red)
		g.Players[Self].Pieces[i+MaxPieces/2] = NewPiece(i+1, 5, Blue)
		g.Players[Opponent].Pieces[i] = NewPiece(i+1, 0, Unknown)
		g.Players[Opponent].Pieces[i+MaxPieces/2] = NewPiece(i+1, 1, Unknown)
	}
	return g
}

// Copy returns a deep copy of the game.
func (g *Game) Copy() *Game {
	c := *g // Piece collections are arrays and copy by value
	if g.LastMove != nil {
		last := *g.LastMove
		c.LastMove = &last
	}
	return &c
}

// PieceAt returns the owner of the piece on square (x, y) and the piece itself,
// or NoPlayer and nil when the square is empty or off the board.
func (g *Game) PieceAt(x, y int) (PlayerID, *Piece) {
	owner, index := g.locate(x, y)
	if owner == NoPlayer {
		return NoPlayer, nil
	}
	return owner, &g.Players[owner].Pieces[index]
}

// Piece resolves a reference, or returns nil for NoPiece.
func (g *Game) Piece(ref PieceRef) *Piece {
	if !ref.Valid() {
		return nil
	}
	return &g.Players[ref.Owner].Pieces[ref.Index]
}

func (g *Game) locate(x, y int) (PlayerID, int) {
	if !InBounds(x, y) {
		return NoPlayer, -1
	}
	for owner := range g.Players {
		for i, piece := range g.Players[owner].Pieces {
			if piece.X == x && piece.Y == y {
				return PlayerID(owner), i
			}
		}
	}
	return NoPlayer, -1
}

// LegalMoves returns every legal move for the player, pieces in slot order and
// directions in Directions order.
func (g *Game) LegalMoves(player PlayerID) []Move {
	var moves []Move
	for index := range g.Players[player].Pieces {
		for _, dir := range Directions {
			move, err := NewMoveFromIndex(g, player, index, dir)
			if err != nil {
				continue
			}
			if g.IsLegal(move) {
				moves = append(moves, move)
			}
		}
	}
	return moves
}

func (g *Game) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(g.Phase))
	binary.Write(hasher, binary.LittleEndian, int64(g.MovesPlayed))
	binary.Write(hasher, binary.LittleEndian, math.Float64bits(g.CaptureThreshold))

	for _, player := range g.Players {
		for _, piece := range player.Pieces {
			binary.Write(hasher, binary.LittleEndian, int64(piece.X))
			binary.Write(hasher, binary.LittleEndian, int64(piece.Y))
			binary.Write(hasher, binary.LittleEndian, int64(piece.Color))
			binary.Write(hasher, binary.LittleEndian, math.Float64bits(piece.Estimate))
		}
	}

	return StateHash(hasher.Sum64())
}
