package domain

import "time"

const DescriptionMaxLen = 1000

// VideoContext is the per-request view of a video. It lives for exactly one
// analysis and is never persisted.
type VideoContext struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Author          string   `json:"author"`
	DurationSeconds int      `json:"duration_seconds"`
	Tags            []string `json:"tags,omitempty"`
	TopComments     []string `json:"top_comments,omitempty"`
	Extracted       bool     `json:"content_extracted"`
}

type TradingStyle string

const (
	StyleScalping    TradingStyle = "scalping"
	StyleSwingTrade  TradingStyle = "swing trade"
	StylePosition    TradingStyle = "position trading"
	StyleDayTrade    TradingStyle = "day trade"
	StyleEducational TradingStyle = "educativo"
	StyleResults     TradingStyle = "resultado"
)

type MarketCondition string

const (
	ConditionTrending MarketCondition = "trending"
	ConditionRanging  MarketCondition = "ranging"
	ConditionVolatile MarketCondition = "volatile"
	ConditionBearish  MarketCondition = "bearish"
	ConditionBreakout MarketCondition = "breakout"
	ConditionNormal   MarketCondition = "normal"
)

type SetupType string

const (
	SetupBreakout     SetupType = "breakout"
	SetupPullback     SetupType = "pullback"
	SetupReversal     SetupType = "reversal"
	SetupContinuation SetupType = "continuation"
	SetupFlag         SetupType = "flag pattern"
	SetupPriceAction  SetupType = "price action"
)

// Canonical asset identifiers. AssetGeneric is the last-resort placeholder
// when nothing in the text matches.
const (
	AssetEURUSD  = "EURUSD"
	AssetGBPUSD  = "GBPUSD"
	AssetUSDJPY  = "USDJPY"
	AssetAUDUSD  = "AUDUSD"
	AssetWIN     = "WIN (Mini Ibovespa)"
	AssetWDO     = "WDO (Mini Dólar)"
	AssetVALE3   = "VALE3"
	AssetPETR4   = "PETR4"
	AssetITUB4   = "ITUB4"
	AssetBTC     = "BTC/USD"
	AssetETH     = "ETH/USD"
	AssetGold    = "Gold (XAU/USD)"
	AssetOil     = "Oil (WTI)"
	AssetGeneric = "Mercado Financeiro"
)

// ClassificationResult is a pure function of the analyzed text. Assets holds
// 1 to 3 identifiers in rule-table order.
type ClassificationResult struct {
	Assets    []string
	Style     TradingStyle
	Condition MarketCondition
	Setup     SetupType
}

type TradeDirection string

const (
	DirectionLong  TradeDirection = "LONG"
	DirectionShort TradeDirection = "SHORT"
)

type TradeResult string

const (
	ResultWin  TradeResult = "WIN"
	ResultLoss TradeResult = "LOSS"
)

// Point units per asset category.
const (
	UnitPontos   = "pontos"
	UnitPips     = "pips"
	UnitDollars  = "dollars"
	UnitCentavos = "centavos"
)

// TradeRecord is one fabricated operation inside a report. Entry, exit,
// points and result are generated independently and are not reconciled with
// each other.
type TradeRecord struct {
	ID            int     `json:"id"`
	Timestamp     string  `json:"timestamp"` // MM:SS inside the video
	Asset         string  `json:"asset"`
	Direction     string  `json:"type"`
	Entry         float64 `json:"entry"`
	Exit          float64 `json:"exit"`
	Points        int     `json:"points"`
	PointUnit     string  `json:"pointType"`
	Justification string  `json:"justification"`
	Result        string  `json:"result"`
	SetupType     string  `json:"setupType"`
}

type Summary struct {
	TotalTrades     int      `json:"totalTrades"`
	WinRate         int      `json:"winRate"`
	TotalPoints     int      `json:"totalPoints"`
	BiggestWin      int      `json:"biggestWin"`
	BiggestLoss     int      `json:"biggestLoss"`
	TradingPlatform string   `json:"tradingPlatform"`
	MainAssets      []string `json:"mainAssets"`
	SessionType     string   `json:"sessionType"`
	MarketCondition string   `json:"marketCondition"`
}

type VideoAnalysis struct {
	OriginalTitle  string   `json:"originalTitle"`
	DetectedAssets []string `json:"detectedAssets"`
	TradingStyle   string   `json:"tradingStyle"`
	VideoDuration  string   `json:"videoDuration,omitempty"`
	ChannelName    string   `json:"channelName,omitempty"`
	ContentType    string   `json:"contentType"`
}

// Report is the single canonical response payload. The legacy
// pair/pips/mainPairs shape from earlier iterations is not carried forward.
type Report struct {
	VideoAnalysis     VideoAnalysis     `json:"videoAnalysis"`
	Summary           Summary           `json:"summary"`
	Trades            []TradeRecord     `json:"trades"`
	Insights          []string          `json:"insights"`
	RiskManagement    map[string]string `json:"riskManagement,omitempty"`
	TechnicalAnalysis map[string]string `json:"technicalAnalysis,omitempty"`
}

// AnalysisMeta is the sidecar block returned next to a report.
type AnalysisMeta struct {
	AnalysisID     string    `json:"analysis_id"`
	Version        string    `json:"version"`
	AIEngine       string    `json:"ai_engine,omitempty"`
	ProcessingType string    `json:"processing_type"`
	FeaturesUsed   []string  `json:"features_used,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	VideoURL       string    `json:"video_url,omitempty"`
	Filename       string    `json:"filename,omitempty"`
	Fallback       bool      `json:"error_handled,omitempty"`
	Note           string    `json:"note,omitempty"`
}
