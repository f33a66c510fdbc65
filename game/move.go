package game

import (
	"fmt"
	"time"
)

// MoveType distinguishes a plain relocation from an attack on an enemy
// piece.
type MoveType int

const (
	Relocation MoveType = iota
	Attack
)

// Move is a move intent: which piece goes from where to where. The command
// layer (or the searcher) builds it; the rules engine validates and applies
// it.
type Move struct {
	Piece Piece
	From  Position
	To    Position
	Type  MoveType
}

func (m Move) String() string {
	verb := "moves"
	if m.Type == Attack {
		verb = "attacks"
	}
	return fmt.Sprintf("%s %s %s %s -> %s", m.Piece.Owner, m.Piece.Rank, verb, m.From, m.To)
}

// CombatOutcome is the result class of one combat resolution.
type CombatOutcome int

const (
	AttackerWins CombatOutcome = iota
	DefenderWins
	CombatDraw
)

func (o CombatOutcome) String() string {
	switch o {
	case AttackerWins:
		return "AttackerWins"
	case DefenderWins:
		return "DefenderWins"
	default:
		return "Draw"
	}
}

// CombatResult records a resolved combat between two pieces.
type CombatResult struct {
	Attacker Piece
	Defender Piece
	Outcome  CombatOutcome
}

// MoveRecord is a permanent history entry. The two-square rule is enforced
// by pattern matching the most recent records for the same piece.
type MoveRecord struct {
	Move      Move
	Combat    *CombatResult
	Turn      int
	Timestamp time.Time
}
