package services

import (
	"github.com/shopspring/decimal"

	"salon-agenda-backend/models"
)

// LoyaltyPolicy maps a client's point balance to a redeemable discount. The
// mapping itself lives outside the booking core; the transaction only asks
// how much to discount and how many points that costs.
type LoyaltyPolicy interface {
	Redeem(client *models.Client) (discount decimal.Decimal, pointsSpent int)
}

// PointsPerEuro is the default house policy: every full block of 100 points
// is worth 5 off, all redeemable blocks are spent at once.
type PointsPerEuro struct{}

func (PointsPerEuro) Redeem(client *models.Client) (decimal.Decimal, int) {
	blocks := client.LoyaltyPoints / 100
	if blocks <= 0 {
		return decimal.Zero, 0
	}
	return decimal.NewFromInt(int64(blocks * 5)), blocks * 100
}
