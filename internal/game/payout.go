package game

// Payout maps a bet and an outcome to the chips returned to the player.
// Blackjack pays 3:2 on top of the returned bet, a win pays 1:1, a push
// returns the bet, and a loss or bust forfeits it.
func Payout(bet int, outcome Outcome) int {
	switch outcome {
	case OutcomeBlackjack:
		return bet * 5 / 2 // floor(bet * 2.5)
	case OutcomeWin:
		return bet * 2
	case OutcomePush:
		return bet
	default:
		return 0
	}
}

// PlayerResult is the settled outcome for one player in one round
type PlayerResult struct {
	Status       Outcome `json:"status"`
	Payout       int     `json:"payout"`
	FinalBalance int     `json:"finalBalance"`
}

// ApplyPayout credits the payout for an outcome and updates the player's
// cumulative session stats. CurrentBet and HasPlacedBet are deliberately
// left intact so result-phase consumers can still see the bet that
// produced this payout; the next round's reset clears them.
func ApplyPayout(p *Player, outcome Outcome) PlayerResult {
	payout := Payout(p.CurrentBet, outcome)
	p.Balance += payout

	if winnings := payout - p.CurrentBet; winnings > 0 {
		p.Stats.TotalWinnings += winnings
	}
	if payout == 0 {
		p.Stats.TotalLosses += p.CurrentBet
	}

	switch outcome {
	case OutcomeBlackjack:
		p.Stats.GamesBlackjack++
		p.Stats.GamesWon++
	case OutcomeWin:
		p.Stats.GamesWon++
	case OutcomePush:
		p.Stats.GamesDraw++
	case OutcomeBust:
		p.Stats.GamesBust++
		p.Stats.GamesLost++
	case OutcomeLose:
		p.Stats.GamesLost++
	}

	return PlayerResult{
		Status:       outcome,
		Payout:       payout,
		FinalBalance: p.Balance,
	}
}
