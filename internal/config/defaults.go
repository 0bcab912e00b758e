package config

// Default values for optional market fields.
const (
	DefaultCoverFactor = 1000
	DefaultTickSpacing = 1
	DefaultGasreq      = 100_000
	DefaultEthCentiUSD = 300_000
)

func (c *Config) applyDefaults() {
	for i := range c.Markets {
		m := &c.Markets[i]
		if m.CoverFactor == 0 {
			m.CoverFactor = DefaultCoverFactor
		}
		if m.TickSpacing == 0 {
			m.TickSpacing = DefaultTickSpacing
		}
		if m.Gasreq == 0 {
			m.Gasreq = DefaultGasreq
		}
		if m.EthCentiUSD == 0 {
			m.EthCentiUSD = DefaultEthCentiUSD
		}
	}
}
