package game

// Evaluate scores a state from one side's perspective as a value between -1
// and 1, positive meaning favorable. Used as the leaf heuristic by the
// searcher; the exact weighting is a tuning choice, not a correctness one.
type Evaluate func(gs *GameState, perspective Side) float64

// pieceValues weighs ranks by usefulness rather than raw strength: the Spy
// and Miners punch above their strength, Scouts are cheap, Bombs hold
// ground.
var pieceValues = map[Rank]float64{
	Flag:       0, // flag loss is terminal, not material
	Spy:        6,
	Scout:      2,
	Miner:      5,
	Sergeant:   4,
	Lieutenant: 5,
	Captain:    6,
	Major:      7,
	Colonel:    8,
	General:    9,
	Marshal:    10,
	Bomb:       4,
}

// EvaluateMaterial tallies each side's remaining material.
func EvaluateMaterial(gs *GameState, perspective Side) float64 {
	own := materialFor(gs, perspective)
	enemy := materialFor(gs, perspective.Opponent())
	return normalize(own, enemy)
}

// EvaluateMaterialPosition combines material with two positional features:
// advancement of movable pieces toward the enemy rows and friendly cover
// around the flag.
func EvaluateMaterialPosition(gs *GameState, perspective Side) float64 {
	materialScore := EvaluateMaterial(gs, perspective)
	advanceScore := normalize(advancementFor(gs, perspective), advancementFor(gs, perspective.Opponent()))
	coverScore := normalize(flagCoverFor(gs, perspective), flagCoverFor(gs, perspective.Opponent()))

	// Material dominates; positional terms break ties between materially
	// equal lines.
	return (4*materialScore + advanceScore + coverScore) / 6
}

func materialFor(gs *GameState, side Side) float64 {
	total := 0.0
	for _, piece := range gs.PlayerFor(side).Pieces {
		value := pieceValues[piece.Rank]
		if piece.Revealed {
			// A revealed piece has lost its bluff value.
			value *= 0.9
		}
		total += value
	}
	return total
}

func advancementFor(gs *GameState, side Side) float64 {
	total := 0.0
	for _, piece := range gs.PlayerFor(side).Pieces {
		if !piece.Rank.Movable() {
			continue
		}
		// Rows advanced from the home edge, 0..9.
		if side == Red {
			total += float64(BoardSize - 1 - piece.Pos.Row)
		} else {
			total += float64(piece.Pos.Row)
		}
	}
	return total
}

func flagCoverFor(gs *GameState, side Side) float64 {
	flagPos := gs.PlayerFor(side).FlagPos
	if flagPos == nil {
		return 0
	}
	cover := 0.0
	for _, dir := range Directions {
		adjacent := flagPos.Offset(dir)
		if !adjacent.InBounds() {
			cover++ // a wall is as good as a guard
			continue
		}
		if p := gs.Board.PieceAt(adjacent); p != nil && p.Owner == side {
			cover++
		}
	}
	return cover
}

// normalize converts two tallies into a single score between -1 and 1.
func normalize(value, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
