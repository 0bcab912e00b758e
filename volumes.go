package main

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/yimingwow/ticklib/pkg/quote"
	"github.com/yimingwow/ticklib/pkg/ticklib"
)

// tickFromPair parses "inbound/outbound" and returns its tick.
func tickFromPair(s string) (ticklib.Tick, error) {
	in, out, ok := strings.Cut(s, "/")
	if !ok {
		return 0, fmt.Errorf("expected inbound/outbound, got %q", s)
	}
	inbound, ok := math.NewIntFromString(strings.TrimSpace(in))
	if !ok {
		return 0, fmt.Errorf("invalid inbound amount %q", in)
	}
	outbound, ok := math.NewIntFromString(strings.TrimSpace(out))
	if !ok {
		return 0, fmt.Errorf("invalid outbound amount %q", out)
	}
	return quote.TickFromAmounts(inbound, outbound)
}
