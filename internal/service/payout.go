package service

import "apunab/internal/domain"

// PotentialPayout computes the payout a bet would return if it wins.
// A bet without a game pays the stake back as is.
func PotentialPayout(stake float64, game *domain.Game) float64 {
	if game == nil {
		return stake
	}
	return stake * game.Multiplier
}
