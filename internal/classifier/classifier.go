// Package classifier maps free video text to recognized instruments and
// coarse trading labels using ordered regex rule tables. Classification is
// pure: the tables are static and no random source is ever consulted, so the
// same text always yields the same result.
package classifier

import (
	"regexp"
	"strings"

	"tradevision/internal/domain"
)

const maxAssets = 3

type assetRule struct {
	asset   string
	pattern *regexp.Regexp
}

// Primary table, evaluated in order against the lower-cased text. Insertion
// order is the precedence order.
var assetRules = []assetRule{
	{domain.AssetEURUSD, regexp.MustCompile(`eur\s*/?usd|euro.*dolar|eurusd`)},
	{domain.AssetGBPUSD, regexp.MustCompile(`gbp\s*/?usd|libra.*dolar|gbpusd|cable`)},
	{domain.AssetUSDJPY, regexp.MustCompile(`usd\s*/?jpy|dolar.*iene|usdjpy`)},
	{domain.AssetAUDUSD, regexp.MustCompile(`aud\s*/?usd|aussie.*dolar|audusd`)},
	{domain.AssetWIN, regexp.MustCompile(`\bwin\b|mini.*ibov|índice.*futur|ibovespa`)},
	{domain.AssetWDO, regexp.MustCompile(`\bwdo\b|mini.*dólar|dolar.*futur`)},
	{domain.AssetVALE3, regexp.MustCompile(`vale3|vale\s+on|companhia.*vale`)},
	{domain.AssetPETR4, regexp.MustCompile(`petr4|petrobras|petróleo.*brasil`)},
	{domain.AssetITUB4, regexp.MustCompile(`itub4|itaú.*unibanco|banco.*itau`)},
	{domain.AssetBTC, regexp.MustCompile(`bitcoin|btc|cripto.*moeda.*principal`)},
	{domain.AssetETH, regexp.MustCompile(`ethereum|eth\b|ether`)},
	{domain.AssetGold, regexp.MustCompile(`ouro|gold|xau`)},
	{domain.AssetOil, regexp.MustCompile(`petróleo|oil|wti|crude`)},
}

// Secondary table for broader category keywords, used only when the primary
// table matched nothing. Together with AssetGeneric it guarantees the result
// list is never empty.
var assetFallbackRules = []assetRule{
	{domain.AssetEURUSD, regexp.MustCompile(`forex|cambio|moeda`)},
	{domain.AssetWIN, regexp.MustCompile(`bovespa|b3|índice`)},
	{domain.AssetBTC, regexp.MustCompile(`crypto|bitcoin|moeda.*digital`)},
	{domain.AssetVALE3, regexp.MustCompile(`ação|stock|empresa`)},
}

type styleRule struct {
	style   domain.TradingStyle
	pattern *regexp.Regexp
}

// Earlier entries win on ties: text matching both the scalping and swing
// keywords classifies as scalping.
var styleRules = []styleRule{
	{domain.StyleScalping, regexp.MustCompile(`scalp|rápid|segundos|tick`)},
	{domain.StyleSwingTrade, regexp.MustCompile(`swing|dias|seman`)},
	{domain.StylePosition, regexp.MustCompile(`position|longo.*prazo|mes`)},
	{domain.StyleDayTrade, regexp.MustCompile(`day.*trade|intraday|diário`)},
	{domain.StyleEducational, regexp.MustCompile(`aula|curso|aprend|ensino`)},
	{domain.StyleResults, regexp.MustCompile(`resultado|performance|balanço`)},
}

type conditionRule struct {
	condition domain.MarketCondition
	pattern   *regexp.Regexp
}

var conditionRules = []conditionRule{
	{domain.ConditionTrending, regexp.MustCompile(`tendência|trend|alta|bull`)},
	{domain.ConditionRanging, regexp.MustCompile(`lateral|ranging|consolid`)},
	{domain.ConditionVolatile, regexp.MustCompile(`volátil|volatilidade|instável`)},
	{domain.ConditionBearish, regexp.MustCompile(`bearish|baixa|bear`)},
	{domain.ConditionBreakout, regexp.MustCompile(`breakout|rompimento|ruptura`)},
}

type setupRule struct {
	setup   domain.SetupType
	pattern *regexp.Regexp
}

var setupRules = []setupRule{
	{domain.SetupBreakout, regexp.MustCompile(`breakout|rompimento`)},
	{domain.SetupPullback, regexp.MustCompile(`pullback|retração`)},
	{domain.SetupReversal, regexp.MustCompile(`reversal|reversão`)},
	{domain.SetupContinuation, regexp.MustCompile(`continuation|continuação`)},
	{domain.SetupFlag, regexp.MustCompile(`flag|bandeira`)},
}

// Classify derives assets, style, market condition and setup type from free
// text. It never fails and never returns an empty asset list.
func Classify(text string) domain.ClassificationResult {
	lower := strings.ToLower(text)

	return domain.ClassificationResult{
		Assets:    DetectAssets(lower),
		Style:     detectStyle(lower),
		Condition: detectCondition(lower),
		Setup:     DetectSetup(lower),
	}
}

// DetectAssets returns up to maxAssets identifiers in rule-table order. The
// input is expected lower-cased; Classify takes care of that.
func DetectAssets(lower string) []string {
	assets := make([]string, 0, maxAssets)
	for _, rule := range assetRules {
		if rule.pattern.MatchString(lower) {
			assets = append(assets, rule.asset)
		}
	}
	if len(assets) > maxAssets {
		assets = assets[:maxAssets]
	}
	if len(assets) > 0 {
		return assets
	}

	for _, rule := range assetFallbackRules {
		if rule.pattern.MatchString(lower) {
			return []string{rule.asset}
		}
	}
	return []string{domain.AssetGeneric}
}

func detectStyle(lower string) domain.TradingStyle {
	for _, rule := range styleRules {
		if rule.pattern.MatchString(lower) {
			return rule.style
		}
	}
	return domain.StyleDayTrade
}

func detectCondition(lower string) domain.MarketCondition {
	for _, rule := range conditionRules {
		if rule.pattern.MatchString(lower) {
			return rule.condition
		}
	}
	return domain.ConditionNormal
}

// DetectSetup is also applied to per-trade context by the report assembler.
func DetectSetup(lower string) domain.SetupType {
	for _, rule := range setupRules {
		if rule.pattern.MatchString(lower) {
			return rule.setup
		}
	}
	return domain.SetupPriceAction
}
