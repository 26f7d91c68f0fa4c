// Package pricing implements the protocol's integer price model: starting
// auction prices decay with the registration id, bids must clear a
// percentage increase, and the name creator earns a share that shrinks as
// the registry fills.
package pricing

import (
	"errors"
	"fmt"
)

const (
	// MinimalAuctionPrice is the floor a decayed starting price never
	// drops below, in base units.
	MinimalAuctionPrice = 1000
	// MinimalDeduction is the dust amount subtracted before the creator
	// incentive split.
	MinimalDeduction = 546

	priceDecayDenominator = 1_000_000
	priceDecayPerID       = 3
	incentiveDenominator  = 100_000
)

// ErrIncentiveRange is returned when the creator incentive inputs are
// outside the model's domain.
var ErrIncentiveRange = errors.New("creator incentive out of range")

// AuctionPrice returns the minimum starting bid for the given registration
// id. The price decays linearly from minStartingBid by 3 millionths per
// registration and never drops below MinimalAuctionPrice.
func AuctionPrice(registrationID, minStartingBid uint64) uint64 {
	total := minStartingBid * priceDecayDenominator
	decay := minStartingBid * registrationID * priceDecayPerID
	if decay >= total {
		return MinimalAuctionPrice
	}
	price := (total - decay) / priceDecayDenominator
	if price < MinimalAuctionPrice {
		return MinimalAuctionPrice
	}
	return price
}

// MinimumBid returns the smallest bid that outbids currentBid given the
// configured minimum increase percentage. Truncating division.
func MinimumBid(currentBid, increasePct uint64) uint64 {
	return currentBid * (100 + increasePct) / 100
}

// CreatorIncentive returns the share of an auction's value owed to the
// name's creator. The share shrinks with the registration id and reaches
// zero at id 100000.
func CreatorIncentive(price, registrationID uint64) (uint64, error) {
	if registrationID > incentiveDenominator {
		return 0, fmt.Errorf("%w: registration id %d", ErrIncentiveRange, registrationID)
	}
	if price < MinimalDeduction {
		return 0, fmt.Errorf("%w: price %d below deduction", ErrIncentiveRange, price)
	}
	return (price - MinimalDeduction) * (incentiveDenominator - registrationID) / incentiveDenominator, nil
}
