// Package synth fabricates plausible-looking trade records used both for the
// prompt template and as the fallback report when the AI path fails. All
// randomness flows through the generator's injected rand source; the
// platform and point-unit helpers are pure functions of the asset id.
package synth

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"tradevision/internal/domain"
)

const maxWinRate = 90

var profitCommentPattern = regexp.MustCompile(`lucro|profit|ganho`)

type Generator struct {
	rnd *rand.Rand
}

// NewGenerator builds a generator around rnd. A nil rnd gets a time-seeded
// source, which matches production use; tests inject a fixed seed.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: rnd}
}

// TradeCount scales with video duration and trading style: scalping runs at
// roughly one trade per five minutes, educational videos cap at two, anything
// else at one per seven minutes or so. Never below one.
func (g *Generator) TradeCount(durationSecs int, style domain.TradingStyle) int {
	var count int
	switch style {
	case domain.StyleScalping:
		count = durationSecs/300 + 1
	case domain.StyleEducational:
		count = durationSecs / 600
		if count > 2 {
			count = 2
		}
	default:
		count = durationSecs/400 + 1
	}
	if count < 1 {
		count = 1
	}
	return count
}

// WinRate starts from a style-dependent base, adds a bounded random bonus and
// a fixed bump when any comment mentions profits, then clamps at maxWinRate.
func (g *Generator) WinRate(style domain.TradingStyle, comments []string) int {
	base := 60
	if style == domain.StyleEducational {
		base = 80
	}
	bonus := 0
	for _, c := range comments {
		if profitCommentPattern.MatchString(strings.ToLower(c)) {
			bonus = 10
			break
		}
	}
	rate := base + g.rnd.Intn(20) + bonus
	if rate > maxWinRate {
		rate = maxWinRate
	}
	return rate
}

// Points draws from a per-asset-category range. Scalping narrows the forex
// and index ranges; swing and day styles use the wider ones.
func (g *Generator) Points(asset string, style domain.TradingStyle) int {
	scalping := style == domain.StyleScalping
	switch {
	case strings.Contains(asset, "WIN"):
		if scalping {
			return 50 + g.rnd.Intn(100)
		}
		return 100 + g.rnd.Intn(300)
	case strings.Contains(asset, "BTC"):
		return 100 + g.rnd.Intn(500)
	case strings.Contains(asset, "USD"):
		if scalping {
			return 10 + g.rnd.Intn(20)
		}
		return 25 + g.rnd.Intn(75)
	default:
		return 20 + g.rnd.Intn(80)
	}
}

type pricePair struct {
	entry float64
	exit  float64
}

// Static reference prices for the liquid assets; anything unknown borrows the
// EURUSD pair.
var referencePrices = map[string]pricePair{
	domain.AssetEURUSD: {1.0850, 1.0875},
	domain.AssetGBPUSD: {1.2450, 1.2475},
	domain.AssetWIN:    {120000, 120150},
	domain.AssetBTC:    {43500, 43750},
	domain.AssetVALE3:  {68.50, 68.85},
}

// Prices returns jittered entry and exit reference prices for the asset.
func (g *Generator) Prices(asset string) (entry, exit float64) {
	base, ok := referencePrices[asset]
	if !ok {
		base = referencePrices[domain.AssetEURUSD]
	}
	entry = base.entry + (g.rnd.Float64()-0.5)*0.01
	exit = base.exit + (g.rnd.Float64()-0.5)*0.01
	return entry, exit
}

// BigWin and BigLoss use their own constant ranges per asset category. They
// are not reconciled with any individual trade's points.
func (g *Generator) BigWin(asset string) int {
	switch {
	case strings.Contains(asset, "WIN"):
		return 200 + g.rnd.Intn(300)
	case strings.Contains(asset, "BTC"):
		return 300 + g.rnd.Intn(700)
	default:
		return 30 + g.rnd.Intn(70)
	}
}

func (g *Generator) BigLoss(asset string) int {
	switch {
	case strings.Contains(asset, "WIN"):
		return -(100 + g.rnd.Intn(200))
	case strings.Contains(asset, "BTC"):
		return -(150 + g.rnd.Intn(350))
	default:
		return -(15 + g.rnd.Intn(35))
	}
}

// Timestamp places a trade at a random MM:SS mark strictly inside the video
// when the duration is known.
func (g *Generator) Timestamp(durationSecs int) string {
	minutes := 0
	if m := durationSecs / 60; m > 0 {
		minutes = g.rnd.Intn(m)
	}
	seconds := g.rnd.Intn(60)
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func (g *Generator) direction() domain.TradeDirection {
	if g.rnd.Float64() > 0.5 {
		return domain.DirectionLong
	}
	return domain.DirectionShort
}

func (g *Generator) result() domain.TradeResult {
	if g.rnd.Float64() > 0.4 {
		return domain.ResultWin
	}
	return domain.ResultLoss
}

// PointUnit is a pure function of the asset id: index futures count pontos,
// crypto dollars, the listed equities centavos, everything else pips.
func PointUnit(asset string) string {
	switch {
	case strings.Contains(asset, "WIN") || strings.Contains(asset, "WDO"):
		return domain.UnitPontos
	case strings.Contains(asset, "BTC") || strings.Contains(asset, "ETH"):
		return domain.UnitDollars
	case strings.Contains(asset, "VALE") || strings.Contains(asset, "PETR") || strings.Contains(asset, "ITUB"):
		return domain.UnitCentavos
	default:
		return domain.UnitPips
	}
}

// Platform is a pure function of the asset id.
func Platform(asset string) string {
	switch {
	case strings.Contains(asset, "WIN") || strings.Contains(asset, "WDO"):
		return "Profit"
	case strings.Contains(asset, "BTC") || strings.Contains(asset, "ETH"):
		return "Binance"
	case strings.Contains(asset, "VALE") || strings.Contains(asset, "PETR") || strings.Contains(asset, "ITUB"):
		return "Homebroker B3"
	default:
		return "MetaTrader 4"
	}
}

// GenerateTrades fabricates the summary numbers and the ordered trade list
// for the detected assets. Direction and result are rolled independently of
// the prices, exactly like the behavior this replaces: a LONG with exit below
// entry can still be a WIN.
func (g *Generator) GenerateTrades(
	cls domain.ClassificationResult,
	durationSecs int,
	comments []string,
	videoTitle string,
) (domain.Summary, []domain.TradeRecord) {
	primary := cls.Assets[0]
	count := g.TradeCount(durationSecs, cls.Style)

	trades := make([]domain.TradeRecord, 0, count)
	for i := 0; i < count; i++ {
		asset := cls.Assets[i%len(cls.Assets)]
		entry, exit := g.Prices(asset)
		justification := fmt.Sprintf("Setup identificado na análise do vídeo com %s", asset)
		if videoTitle != "" {
			justification = fmt.Sprintf("Baseado no setup explicado no vídeo '%s'", videoTitle)
		}
		trades = append(trades, domain.TradeRecord{
			ID:            i + 1,
			Timestamp:     g.Timestamp(durationSecs),
			Asset:         asset,
			Direction:     string(g.direction()),
			Entry:         entry,
			Exit:          exit,
			Points:        g.Points(asset, cls.Style),
			PointUnit:     PointUnit(asset),
			Justification: justification,
			Result:        string(g.result()),
			SetupType:     string(cls.Setup),
		})
	}

	summary := domain.Summary{
		TotalTrades:     count,
		WinRate:         g.WinRate(cls.Style, comments),
		TotalPoints:     g.Points(primary, cls.Style),
		BiggestWin:      g.BigWin(primary),
		BiggestLoss:     g.BigLoss(primary),
		TradingPlatform: Platform(primary),
		MainAssets:      cls.Assets,
		SessionType:     string(cls.Style),
		MarketCondition: string(cls.Condition),
	}
	return summary, trades
}
