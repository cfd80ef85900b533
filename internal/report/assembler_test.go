package report

import (
	"strings"
	"testing"

	"tradevision/internal/domain"
)

func testContext() *domain.VideoContext {
	return &domain.VideoContext{
		Title:           "WIN scalping ao vivo",
		Description:     "Operações no mini índice",
		Author:          "Canal Teste",
		DurationSeconds: 912,
		Tags:            []string{"win", "scalping"},
		TopComments:     []string{"Excelente análise técnica!"},
		Extracted:       true,
	}
}

func testClassification() domain.ClassificationResult {
	return domain.ClassificationResult{
		Assets:    []string{domain.AssetWIN},
		Style:     domain.StyleScalping,
		Condition: domain.ConditionTrending,
		Setup:     domain.SetupBreakout,
	}
}

func testSummary() domain.Summary {
	return domain.Summary{
		TotalTrades:     4,
		WinRate:         72,
		TotalPoints:     130,
		BiggestWin:      250,
		BiggestLoss:     -120,
		TradingPlatform: "Profit",
		MainAssets:      []string{domain.AssetWIN},
		SessionType:     string(domain.StyleScalping),
		MarketCondition: string(domain.ConditionTrending),
	}
}

func TestBuildPromptEmbedsContextAndComputedSummary(t *testing.T) {
	prompt := BuildPrompt(testContext(), testClassification(), testSummary(), nil)

	for _, fragment := range []string{
		"WIN scalping ao vivo",
		"Canal Teste",
		domain.AssetWIN,
		"scalping",
		"trending",
		`"totalTrades": 4`,
		`"winRate": 72`,
		`"tradingPlatform": "Profit"`,
		"VALID JSON ONLY",
		"15:12", // 912s rendered MM:SS
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q", fragment)
		}
	}
}

func TestBuildPromptUsesFirstTradeAsTemplate(t *testing.T) {
	trades := []domain.TradeRecord{{
		ID:        1,
		Timestamp: "03:40",
		Asset:     domain.AssetWIN,
		Direction: string(domain.DirectionLong),
		Points:    88,
		PointUnit: domain.UnitPontos,
		Result:    string(domain.ResultWin),
		SetupType: string(domain.SetupBreakout),
	}}
	prompt := BuildPrompt(testContext(), testClassification(), testSummary(), trades)
	if !strings.Contains(prompt, `"points": 88`) {
		t.Fatal("prompt should interpolate the first generated trade")
	}
	if !strings.Contains(prompt, `"timestamp": "03:40"`) {
		t.Fatal("prompt should carry the generated timestamp")
	}
}

func TestAssembleFallbackShape(t *testing.T) {
	trades := []domain.TradeRecord{{ID: 1, Asset: domain.AssetWIN}}
	rep := AssembleFallback(testContext(), testClassification(), testSummary(), trades)

	if rep.VideoAnalysis.ContentType != ContentTypeFallback {
		t.Fatalf("expected fallback content type, got %s", rep.VideoAnalysis.ContentType)
	}
	if rep.VideoAnalysis.OriginalTitle != "WIN scalping ao vivo" {
		t.Fatalf("unexpected title %s", rep.VideoAnalysis.OriginalTitle)
	}
	if len(rep.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(rep.Trades))
	}
	if len(rep.Insights) != 4 {
		t.Fatalf("expected 4 extracted-content insights, got %d", len(rep.Insights))
	}
	if rep.RiskManagement["riskRewardRatio"] != "1:2" {
		t.Fatalf("missing risk management block: %v", rep.RiskManagement)
	}
	if rep.TechnicalAnalysis["setup"] != string(domain.SetupBreakout) {
		t.Fatalf("missing technical analysis block: %v", rep.TechnicalAnalysis)
	}
}

func TestAssembleFallbackWithoutExtractionUsesURLInsights(t *testing.T) {
	vctx := &domain.VideoContext{Extracted: false}
	rep := AssembleFallback(vctx, testClassification(), testSummary(), nil)
	if rep.VideoAnalysis.OriginalTitle != "Análise baseada na URL" {
		t.Fatalf("unexpected title %s", rep.VideoAnalysis.OriginalTitle)
	}
	if len(rep.Insights) != 3 {
		t.Fatalf("expected 3 URL-based insights, got %d", len(rep.Insights))
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		0:    "0:00",
		59:   "0:59",
		60:   "1:00",
		912:  "15:12",
		3600: "60:00",
	}
	for secs, want := range cases {
		if got := FormatDuration(secs); got != want {
			t.Fatalf("FormatDuration(%d) = %s, want %s", secs, got, want)
		}
	}
}
