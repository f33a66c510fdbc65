package game

// Rank is one of the 12 piece ranks, ordered by combat strength for the
// movable ranks. Flag and Bomb are immovable and have no strength of their
// own; their combat behavior is encoded as rules, not numbers.
type Rank int

const (
	Flag Rank = iota
	Spy
	Scout
	Miner
	Sergeant
	Lieutenant
	Captain
	Major
	Colonel
	General
	Marshal
	Bomb
)

var rankNames = [...]string{
	Flag:       "Flag",
	Spy:        "Spy",
	Scout:      "Scout",
	Miner:      "Miner",
	Sergeant:   "Sergeant",
	Lieutenant: "Lieutenant",
	Captain:    "Captain",
	Major:      "Major",
	Colonel:    "Colonel",
	General:    "General",
	Marshal:    "Marshal",
	Bomb:       "Bomb",
}

func (r Rank) String() string {
	if r < Flag || r > Bomb {
		return "Unknown"
	}
	return rankNames[r]
}

// Strength returns the numeric combat strength used for straight
// comparisons: Spy 1 up to Marshal 10. Flag and Bomb return 0; they never
// win on strength alone.
func (r Rank) Strength() int {
	if r == Flag || r == Bomb {
		return 0
	}
	return int(r)
}

// Movable reports whether pieces of this rank may move at all.
func (r Rank) Movable() bool {
	return r != Flag && r != Bomb
}
