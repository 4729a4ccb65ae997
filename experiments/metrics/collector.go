package metrics

import (
	"time"

	"geister/game"
)

type MoveMetric struct {
	Step     int
	Player   game.PlayerID
	Rule     string // Empty for opponent moves
	Move     string
	Captured bool
}

type GameMetric struct {
	StartingPlayer game.PlayerID
	Outcome        string // Terminal phase, or "unfinished" at the move cap
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

const Unfinished = "unfinished"

type Collector interface {
	Start(first game.PlayerID)
	AddMove(m MoveMetric)
	Complete(g *game.Game) (GameMetric, []MoveMetric)
}

type collector struct {
	first     game.PlayerID
	startTime time.Time
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(first game.PlayerID) {
	c.first = first
	c.startTime = time.Now()
	c.moves = nil
}

func (c *collector) AddMove(m MoveMetric) {
	c.moves = append(c.moves, m)
}

func (c *collector) Complete(g *game.Game) (GameMetric, []MoveMetric) {
	end := time.Now()
	outcome := Unfinished
	if g.Phase.IsTerminal() {
		outcome = g.Phase.String()
	}
	return GameMetric{
		StartingPlayer: c.first,
		Outcome:        outcome,
		StartTime:      c.startTime,
		EndTime:        end,
		Duration:       end.Sub(c.startTime),
		TotalMoves:     g.MovesPlayed,
	}, c.moves
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(first game.PlayerID) {}
func (c *dummyCollector) AddMove(m MoveMetric)      {}
func (c *dummyCollector) Complete(g *game.Game) (GameMetric, []MoveMetric) {
	return GameMetric{}, nil
}
