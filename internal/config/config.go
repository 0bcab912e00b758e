// Package config loads the market profiles the ticklib CLI reports on.
package config

// Config is the root of the YAML file.
type Config struct {
	Markets []MarketConfig `yaml:"markets"`
	// Ticks and Prices are converted and printed for every market.
	Ticks  []int64  `yaml:"ticks"`
	Prices []string `yaml:"prices"`
}

// MarketConfig holds the density inputs of one market, prices in hundredths
// of a USD.
type MarketConfig struct {
	Name             string `yaml:"name"`
	OutboundDecimals uint64 `yaml:"outbound_decimals"`
	GaspriceMwei     uint64 `yaml:"gasprice_mwei"`
	EthCentiUSD      uint64 `yaml:"eth_centiusd"`
	OutboundCentiUSD uint64 `yaml:"outbound_centiusd"`
	CoverFactor      uint64 `yaml:"cover_factor"`
	TickSpacing      uint64 `yaml:"tick_spacing"`
	Gasreq           uint64 `yaml:"gasreq"`
}
