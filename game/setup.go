package game

// ArmySize is the number of pieces each side fields.
const ArmySize = 40

// armyComposition is the canonical 40-piece army.
var armyComposition = map[Rank]int{
	Flag:       1,
	Spy:        1,
	Scout:      8,
	Miner:      5,
	Sergeant:   4,
	Lieutenant: 4,
	Captain:    4,
	Major:      3,
	Colonel:    2,
	General:    1,
	Marshal:    1,
	Bomb:       6,
}

// StandardArmy returns the 40 ranks of a full army in rank order. Callers
// that want a randomized setup shuffle the slice themselves.
func StandardArmy() []Rank {
	army := make([]Rank, 0, ArmySize)
	for rank := Flag; rank <= Bomb; rank++ {
		for i := 0; i < armyComposition[rank]; i++ {
			army = append(army, rank)
		}
	}
	return army
}
