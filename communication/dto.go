package communication

import (
	"stratego/game"
)

// Wire shapes for the command/notification shell. These carry no game
// logic: the handlers translate them to engine calls and back.

type placementRequest struct {
	Side string `json:"side"`
	Rank string `json:"rank"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

type moveRequest struct {
	FromRow int `json:"from_row"`
	FromCol int `json:"from_col"`
	ToRow   int `json:"to_row"`
	ToCol   int `json:"to_col"`
}

type aiMoveRequest struct {
	TimeLimitMs int `json:"time_limit_ms"`
}

type squareDTO struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Terrain  string `json:"terrain"`
	Side     string `json:"side,omitempty"`
	Rank     string `json:"rank,omitempty"`
	Revealed bool   `json:"revealed,omitempty"`
}

type combatDTO struct {
	AttackerRank string `json:"attacker_rank"`
	DefenderRank string `json:"defender_rank"`
	Outcome      string `json:"outcome"`
}

type moveDTO struct {
	Side    string     `json:"side"`
	Rank    string     `json:"rank"`
	FromRow int        `json:"from_row"`
	FromCol int        `json:"from_col"`
	ToRow   int        `json:"to_row"`
	ToCol   int        `json:"to_col"`
	Type    string     `json:"type"`
	Combat  *combatDTO `json:"combat,omitempty"`
}

type stateDTO struct {
	Phase        string      `json:"phase"`
	ActivePlayer string      `json:"active_player"`
	Turn         int         `json:"turn"`
	Winner       string      `json:"winner,omitempty"`
	RedPieces    int         `json:"red_pieces"`
	BluePieces   int         `json:"blue_pieces"`
	Squares      []squareDTO `json:"squares"`
	LastMove     *moveDTO    `json:"last_move,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Class string `json:"class"`
}

func stateToDTO(gs *game.GameState) stateDTO {
	dto := stateDTO{
		Phase:        gs.Phase.String(),
		ActivePlayer: gs.ActivePlayer.String(),
		Turn:         gs.Turn,
		RedPieces:    len(gs.Red.Pieces),
		BluePieces:   len(gs.Blue.Pieces),
	}
	if gs.Phase == game.GameOver {
		dto.Winner = gs.Winner.String()
	}
	for row := 0; row < game.BoardSize; row++ {
		for col := 0; col < game.BoardSize; col++ {
			pos := game.Position{Row: row, Col: col}
			square := gs.Board.At(pos)
			sq := squareDTO{Row: row, Col: col, Terrain: "normal"}
			if square.Terrain == game.Lake {
				sq.Terrain = "lake"
			}
			if square.Piece != nil {
				sq.Side = square.Piece.Owner.String()
				sq.Rank = square.Piece.Rank.String()
				sq.Revealed = square.Piece.Revealed
			}
			dto.Squares = append(dto.Squares, sq)
		}
	}
	if n := len(gs.History); n > 0 {
		last := moveToDTO(gs.History[n-1])
		dto.LastMove = &last
	}
	return dto
}

func moveToDTO(record game.MoveRecord) moveDTO {
	dto := moveDTO{
		Side:    record.Move.Piece.Owner.String(),
		Rank:    record.Move.Piece.Rank.String(),
		FromRow: record.Move.From.Row,
		FromCol: record.Move.From.Col,
		ToRow:   record.Move.To.Row,
		ToCol:   record.Move.To.Col,
		Type:    "move",
	}
	if record.Move.Type == game.Attack {
		dto.Type = "attack"
	}
	if record.Combat != nil {
		dto.Combat = &combatDTO{
			AttackerRank: record.Combat.Attacker.Rank.String(),
			DefenderRank: record.Combat.Defender.Rank.String(),
			Outcome:      record.Combat.Outcome.String(),
		}
	}
	return dto
}

var rankByName = map[string]game.Rank{
	"Flag":       game.Flag,
	"Spy":        game.Spy,
	"Scout":      game.Scout,
	"Miner":      game.Miner,
	"Sergeant":   game.Sergeant,
	"Lieutenant": game.Lieutenant,
	"Captain":    game.Captain,
	"Major":      game.Major,
	"Colonel":    game.Colonel,
	"General":    game.General,
	"Marshal":    game.Marshal,
	"Bomb":       game.Bomb,
}

var sideByName = map[string]game.Side{
	"Red":  game.Red,
	"Blue": game.Blue,
}
