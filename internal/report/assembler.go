// Package report builds the provider prompt, assembles fallback reports and
// extracts structured reports from raw AI completions.
package report

import (
	"fmt"
	"strings"

	"tradevision/internal/domain"
)

const (
	ContentTypeReal     = "real_analysis"
	ContentTypeFallback = "fallback_enhanced"
)

// FormatDuration renders seconds as the MM:SS string used across the report.
func FormatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// BuildPrompt composes the instruction block sent to the AI provider. It
// embeds the extracted context, the detected tags and a literal JSON template
// whose numeric fields are interpolated from the already-generated summary,
// so the provider is nudged toward reproducing values the caller computed.
func BuildPrompt(
	vctx *domain.VideoContext,
	cls domain.ClassificationResult,
	summary domain.Summary,
	trades []domain.TradeRecord,
) string {
	assetList := strings.Join(cls.Assets, ", ")
	quotedAssets := `"` + strings.Join(cls.Assets, `", "`) + `"`

	var b strings.Builder
	b.WriteString("You are a trading analyst with 20 years of experience. Analyze this trading video:\n\n")

	b.WriteString("=== EXTRACTED VIDEO CONTENT ===\n")
	fmt.Fprintf(&b, "TITLE: %s\n", vctx.Title)
	fmt.Fprintf(&b, "DESCRIPTION: %s\n", vctx.Description)
	fmt.Fprintf(&b, "AUTHOR: %s\n", vctx.Author)
	fmt.Fprintf(&b, "DURATION: %s\n", FormatDuration(vctx.DurationSeconds))
	fmt.Fprintf(&b, "TAGS: %s\n", strings.Join(vctx.Tags, ", "))
	fmt.Fprintf(&b, "TOP COMMENTS: %s\n\n", strings.Join(vctx.TopComments, " | "))

	fmt.Fprintf(&b, "=== DETECTED ASSETS ===\n%s\n\n", assetList)
	fmt.Fprintf(&b, "=== IDENTIFIED TRADING STYLE ===\n%s\n\n", cls.Style)
	fmt.Fprintf(&b, "=== MENTIONED MARKET CONDITIONS ===\n%s\n\n", cls.Condition)

	b.WriteString("=== CRITICAL INSTRUCTIONS ===\n")
	b.WriteString("1. Base the analysis on the extracted content above\n")
	b.WriteString("2. Use ONLY the detected assets\n")
	fmt.Fprintf(&b, "3. Video duration is %ds - scale the number of trades accordingly\n", vctx.DurationSeconds)
	b.WriteString("4. If the comments mention results, incorporate them\n")
	b.WriteString("5. Be specific and unique to this exact video\n\n")

	b.WriteString("RESPOND WITH VALID JSON ONLY:\n\n")

	exampleTrade := domain.TradeRecord{ID: 1}
	if len(trades) > 0 {
		exampleTrade = trades[0]
	}
	fmt.Fprintf(&b, `{
  "videoAnalysis": {
    "originalTitle": %q,
    "detectedAssets": [%s],
    "tradingStyle": %q,
    "videoDuration": %q,
    "channelName": %q,
    "contentType": %q
  },
  "summary": {
    "totalTrades": %d,
    "winRate": %d,
    "totalPoints": %d,
    "biggestWin": %d,
    "biggestLoss": %d,
    "tradingPlatform": %q,
    "mainAssets": [%s],
    "sessionType": %q,
    "marketCondition": %q
  },
  "trades": [
    {
      "id": 1,
      "timestamp": %q,
      "asset": %q,
      "type": %q,
      "entry": %.4f,
      "exit": %.4f,
      "points": %d,
      "pointType": %q,
      "justification": %q,
      "result": %q,
      "setupType": %q
    }
  ],
  "insights": ["..."],
  "riskManagement": {"stopLoss": "...", "riskRewardRatio": "..."},
  "technicalAnalysis": {"trend": "...", "keyLevels": "..."}
}
`,
		vctx.Title, quotedAssets, cls.Style,
		FormatDuration(vctx.DurationSeconds), vctx.Author, ContentTypeReal,
		summary.TotalTrades, summary.WinRate, summary.TotalPoints,
		summary.BiggestWin, summary.BiggestLoss, summary.TradingPlatform,
		quotedAssets, summary.SessionType, summary.MarketCondition,
		exampleTrade.Timestamp, exampleTrade.Asset, exampleTrade.Direction,
		exampleTrade.Entry, exampleTrade.Exit, exampleTrade.Points,
		exampleTrade.PointUnit, exampleTrade.Justification,
		exampleTrade.Result, exampleTrade.SetupType,
	)

	b.WriteString("\nBE EXTREMELY SPECIFIC AND UNIQUE TO THIS VIDEO!\n")
	return b.String()
}

// AssembleFallback builds the locally synthesized report used whenever the AI
// call or its parsing fails. It performs no validation of its own.
func AssembleFallback(
	vctx *domain.VideoContext,
	cls domain.ClassificationResult,
	summary domain.Summary,
	trades []domain.TradeRecord,
) *domain.Report {
	title := vctx.Title
	if title == "" {
		title = "Análise baseada na URL"
	}

	return &domain.Report{
		VideoAnalysis: domain.VideoAnalysis{
			OriginalTitle:  title,
			DetectedAssets: cls.Assets,
			TradingStyle:   string(cls.Style),
			VideoDuration:  FormatDuration(vctx.DurationSeconds),
			ChannelName:    vctx.Author,
			ContentType:    ContentTypeFallback,
		},
		Summary:           summary,
		Trades:            trades,
		Insights:          buildInsights(vctx, cls),
		RiskManagement:    buildRiskManagement(cls),
		TechnicalAnalysis: buildTechnicalAnalysis(cls),
	}
}

func buildInsights(vctx *domain.VideoContext, cls domain.ClassificationResult) []string {
	assetList := strings.Join(cls.Assets, ", ")
	if vctx.Extracted {
		return []string{
			fmt.Sprintf("Análise baseada no vídeo real: %s", vctx.Title),
			fmt.Sprintf("Canal: %s - %d minutos de conteúdo", vctx.Author, vctx.DurationSeconds/60),
			fmt.Sprintf("Ativos específicos mencionados: %s", assetList),
			fmt.Sprintf("Estilo identificado: %s com foco em %s", cls.Style, cls.Condition),
		}
	}
	return []string{
		fmt.Sprintf("Análise baseada na URL com foco em %s", cls.Assets[0]),
		"Sistema de fallback inteligente ativo",
		"Dados gerados com base no contexto detectado",
	}
}

func buildRiskManagement(cls domain.ClassificationResult) map[string]string {
	stop := "Stop curto abaixo do último fundo"
	if cls.Style == domain.StyleSwingTrade || cls.Style == domain.StylePosition {
		stop = "Stop técnico abaixo do suporte da semana"
	}
	return map[string]string{
		"stopLoss":        stop,
		"riskRewardRatio": "1:2",
		"positionSizing":  "Máximo de 2% do capital por operação",
	}
}

func buildTechnicalAnalysis(cls domain.ClassificationResult) map[string]string {
	return map[string]string{
		"trend":     string(cls.Condition),
		"setup":     string(cls.Setup),
		"keyLevels": fmt.Sprintf("Suporte e resistência do dia em %s", cls.Assets[0]),
		"timeframe": timeframeFor(cls.Style),
	}
}

func timeframeFor(style domain.TradingStyle) string {
	switch style {
	case domain.StyleScalping:
		return "1m-5m"
	case domain.StyleSwingTrade, domain.StylePosition:
		return "4h-diário"
	default:
		return "5m-15m"
	}
}
