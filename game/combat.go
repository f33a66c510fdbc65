package game

// ResolveCombat maps an attacker/defender pair to an outcome. Pure function,
// no side effects. Rules are evaluated in order: any attacker captures a
// defending Flag; the Spy beats the Marshal, but only when the Spy attacks;
// only the Miner defuses a Bomb, every other attacker loses to it; otherwise
// the higher strength wins and equal strength is a draw (both removed).
//
// Flag and Bomb never appear as attackers: they cannot move, so ValidateMove
// never lets them originate a move.
func ResolveCombat(attacker, defender Piece) CombatResult {
	result := CombatResult{Attacker: attacker, Defender: defender}

	switch {
	case defender.Rank == Flag:
		result.Outcome = AttackerWins
	case attacker.Rank == Spy && defender.Rank == Marshal:
		result.Outcome = AttackerWins
	case attacker.Rank == Miner && defender.Rank == Bomb:
		result.Outcome = AttackerWins
	case defender.Rank == Bomb:
		result.Outcome = DefenderWins
	case attacker.Rank.Strength() > defender.Rank.Strength():
		result.Outcome = AttackerWins
	case attacker.Rank.Strength() < defender.Rank.Strength():
		result.Outcome = DefenderWins
	default:
		result.Outcome = CombatDraw
	}
	return result
}
