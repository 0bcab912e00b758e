package config

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yimingwow/ticklib/pkg/density"
	"github.com/yimingwow/ticklib/pkg/ticklib"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if len(c.Markets) == 0 {
		return errors.New("markets must not be empty")
	}
	seen := make(map[string]bool, len(c.Markets))
	for i := range c.Markets {
		m := &c.Markets[i]
		prefix := fmt.Sprintf("markets[%d]", i)
		if err := m.validate(prefix); err != nil {
			return err
		}
		if seen[m.Name] {
			return fmt.Errorf("%s.name %q is duplicated", prefix, m.Name)
		}
		seen[m.Name] = true
	}

	for i, t := range c.Ticks {
		if !ticklib.Tick(t).InRange() {
			return fmt.Errorf("ticks[%d] must be between %d and %d, got %d", i, ticklib.MinTick, ticklib.MaxTick, t)
		}
	}
	for i, p := range c.Prices {
		d, err := decimal.NewFromString(p)
		if err != nil {
			return fmt.Errorf("prices[%d]: %w", i, err)
		}
		if !d.IsPositive() {
			return fmt.Errorf("prices[%d] must be positive, got %s", i, p)
		}
	}
	return nil
}

func (m *MarketConfig) validate(prefix string) error {
	if m.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if m.OutboundDecimals > density.MaxDecimals {
		return fmt.Errorf("%s.outbound_decimals must be <= %d, got %d", prefix, density.MaxDecimals, m.OutboundDecimals)
	}
	if m.GaspriceMwei == 0 {
		return fmt.Errorf("%s.gasprice_mwei is required", prefix)
	}
	if m.OutboundCentiUSD == 0 {
		return fmt.Errorf("%s.outbound_centiusd is required", prefix)
	}
	if m.TickSpacing > uint64(ticklib.MaxTick) {
		return fmt.Errorf("%s.tick_spacing must be <= %d, got %d", prefix, ticklib.MaxTick, m.TickSpacing)
	}
	return nil
}
