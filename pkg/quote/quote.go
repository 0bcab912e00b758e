// Package quote adapts the tick math to math.Int amounts and estimates
// market orders against a list of resting offers.
package quote

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"
	"github.com/yimingwow/ticklib/pkg"
	"github.com/yimingwow/ticklib/pkg/density"
	"github.com/yimingwow/ticklib/pkg/ticklib"
	"github.com/yimingwow/ticklib/pkg/word"
)

var ErrNilAmount = errors.New("amount is nil")

// ToWord converts a non-negative amount to a machine word.
func ToWord(x math.Int) (uint256.Int, error) {
	if x.IsNil() {
		return uint256.Int{}, ErrNilAmount
	}
	if x.IsNegative() {
		return uint256.Int{}, fmt.Errorf("amount %s: %w", x, pkg.ErrUnderflow)
	}
	w, overflow := uint256.FromBig(x.BigInt())
	if overflow {
		return uint256.Int{}, fmt.Errorf("amount %s: %w", x, pkg.ErrOverflow)
	}
	return *w, nil
}

func FromWord(w uint256.Int) math.Int {
	return math.NewIntFromBigInt(w.ToBig())
}

// Inbound is the amount of inbound token worth outbound at tick.
func Inbound(tick ticklib.Tick, outbound math.Int, rounding pkg.Rounding) (math.Int, error) {
	return convert(tick, outbound, rounding, ticklib.InboundFromOutbound, ticklib.InboundFromOutboundUp)
}

// Outbound is the amount of outbound token worth inbound at tick.
func Outbound(tick ticklib.Tick, inbound math.Int, rounding pkg.Rounding) (math.Int, error) {
	return convert(tick, inbound, rounding, ticklib.OutboundFromInbound, ticklib.OutboundFromInboundUp)
}

type convertFunc func(ticklib.Tick, uint256.Int) (uint256.Int, error)

func convert(tick ticklib.Tick, amount math.Int, rounding pkg.Rounding, down, up convertFunc) (math.Int, error) {
	w, err := ToWord(amount)
	if err != nil {
		return math.Int{}, err
	}
	f := down
	if rounding == pkg.RoundUp {
		f = up
	}
	out, err := f(tick, w)
	if err != nil {
		return math.Int{}, err
	}
	return FromWord(out), nil
}

// TickFromAmounts is the tick of an offer that wants inbound for outbound.
func TickFromAmounts(inbound, outbound math.Int) (ticklib.Tick, error) {
	in, err := ToWord(inbound)
	if err != nil {
		return 0, err
	}
	out, err := ToWord(outbound)
	if err != nil {
		return 0, err
	}
	return ticklib.TickFromVolumes(in, out)
}

// MinVolume is the smallest outbound volume an offer with gasreq may give.
func MinVolume(d density.Density, gasreq uint64) (math.Int, error) {
	v, err := d.RequiredVolume(gasreq)
	if err != nil {
		return math.Int{}, err
	}
	return FromWord(v), nil
}

// Offer is a resting offer giving Gives of the outbound token at Tick.
type Offer struct {
	Tick  ticklib.Tick
	Gives math.Int
}

// Fill is the result of a simulated market order.
type Fill struct {
	Got    math.Int // outbound received
	Gave   math.Int // inbound spent
	Offers int      // offers touched, the last one possibly partially
}

// MarketOrder spends up to fillVolume of inbound token on offers, best
// price first. Partially taken offers round in the maker's favor.
func MarketOrder(offers []Offer, fillVolume math.Int) (Fill, error) {
	remaining, err := ToWord(fillVolume)
	if err != nil {
		return Fill{}, err
	}
	book := slices.Clone(offers)
	slices.SortStableFunc(book, func(a, b Offer) int { return cmp.Compare(a.Tick, b.Tick) })

	var got, gave uint256.Int
	touched := 0
	for _, o := range book {
		if remaining.IsZero() {
			break
		}
		gives, err := ToWord(o.Gives)
		if err != nil {
			return Fill{}, fmt.Errorf("offer at tick %d: %w", o.Tick, err)
		}
		if gives.IsZero() {
			continue
		}
		wants, err := ticklib.InboundFromOutboundUp(o.Tick, gives)
		if err != nil {
			return Fill{}, fmt.Errorf("offer at tick %d: %w", o.Tick, err)
		}
		touched++

		take, pay := gives, wants
		if remaining.Lt(&wants) {
			if take, err = ticklib.OutboundFromInbound(o.Tick, remaining); err != nil {
				return Fill{}, err
			}
			if gives.Lt(&take) {
				take = gives
			}
			pay = remaining
		}
		if got, err = word.Add(got, take); err != nil {
			return Fill{}, err
		}
		if gave, err = word.Add(gave, pay); err != nil {
			return Fill{}, err
		}
		if remaining, err = word.Sub(remaining, pay); err != nil {
			return Fill{}, err
		}
	}
	return Fill{Got: FromWord(got), Gave: FromWord(gave), Offers: touched}, nil
}
