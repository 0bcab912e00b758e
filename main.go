package main

import (
	"flag"
	"log"

	"github.com/shopspring/decimal"
	"github.com/yimingwow/ticklib/internal/config"
	"github.com/yimingwow/ticklib/pkg/density"
	"github.com/yimingwow/ticklib/pkg/quote"
	"github.com/yimingwow/ticklib/pkg/ticklib"
)

var (
	configPath = flag.String("config", "configs/markets.yaml", "path to market profiles")
	volumes    = flag.String("volumes", "", "optional inbound/outbound pair, e.g. 2000/1")
)

func main() {
	flag.Parse()
	log.Printf("🚀loading markets from %s", *configPath)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	for _, m := range cfg.Markets {
		reportMarket(m, cfg)
	}

	if *volumes != "" {
		tick, err := tickFromPair(*volumes)
		if err != nil {
			log.Fatalf("Failed to convert volumes %q: %v", *volumes, err)
		}
		log.Printf("👌volumes %s sit at tick %d", *volumes, tick)
	}
}

func reportMarket(m config.MarketConfig, cfg *config.Config) {
	d, err := density.FromParams(m.OutboundDecimals, m.GaspriceMwei, m.EthCentiUSD, m.OutboundCentiUSD, m.CoverFactor)
	if err != nil {
		log.Fatalf("Failed to compute density for %s: %v", m.Name, err)
	}
	minVolume, err := quote.MinVolume(d, m.Gasreq)
	if err != nil {
		log.Fatalf("Failed to compute min volume for %s: %v", m.Name, err)
	}
	log.Printf("😈%s: density %s (packed %d), offers with gasreq %d must give at least %s",
		m.Name, d, uint16(d), m.Gasreq, minVolume)

	for _, t := range cfg.Ticks {
		tick := ticklib.Tick(t)
		r, err := ticklib.RatioFromTick(tick)
		if err != nil {
			log.Fatalf("Failed to get ratio of tick %d: %v", t, err)
		}
		bin, err := ticklib.NearestBin(tick, m.TickSpacing)
		if err != nil {
			log.Fatalf("Failed to get bin of tick %d: %v", t, err)
		}
		log.Printf("   tick %d: ratio %s, price %s, bin %d", t, r, r.Decimal().StringFixed(8), bin)
	}

	for _, p := range cfg.Prices {
		price := decimal.RequireFromString(p)
		tick, err := ticklib.TickFromPrice(price)
		if err != nil {
			log.Fatalf("Failed to get tick of price %s: %v", p, err)
		}
		bin, err := ticklib.NearestBin(tick, m.TickSpacing)
		if err != nil {
			log.Fatalf("Failed to get bin of price %s: %v", p, err)
		}
		log.Printf("   price %s: tick %d, bin %d", p, tick, bin)
	}
}
