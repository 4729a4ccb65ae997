package engine

import "geister/game"

// event is an input the session reacts to.
type event int

const (
	chooseFirst event = iota
	opponentMove
	automatedMove
	discloseColor
)

var eventNames = []string{"choose first player", "play opponent move", "play automated move", "disclose color"}

func (e event) String() string {
	return eventNames[e]
}

// transitions lists the single event each non-terminal phase accepts.
// Terminal phases are absent: they accept every event as a no-op.
var transitions = map[game.Phase]event{
	game.AwaitingFirstPlayerChoice:  chooseFirst,
	game.AwaitingOpponentMove:       opponentMove,
	game.AutomatedSideToMove:        automatedMove,
	game.AwaitingCapturedPieceColor: discloseColor,
}

func accepts(phase game.Phase, e event) bool {
	expected, ok := transitions[phase]
	return ok && expected == e
}
