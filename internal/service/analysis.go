package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tradevision/internal/classifier"
	"tradevision/internal/domain"
	"tradevision/internal/report"
	"tradevision/internal/synth"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const (
	versionReal     = "REAL-CONTENT-v3.0"
	versionFallback = "ENHANCED-FALLBACK-v3.0"

	testPrompt = "Hello, test connection"
)

var analysisFeatures = []string{
	"YouTube metadata extraction",
	"Asset detection from content",
	"Trading style identification",
	"Context-aware generation",
}

type MetadataProvider interface {
	ValidateURL(url string) bool
	FetchMetadata(ctx context.Context, url string) (*domain.VideoContext, error)
}

type TextCompleter interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

type MetadataCache interface {
	Get(ctx context.Context, url string) (*domain.VideoContext, bool)
	Set(ctx context.Context, url string, vctx *domain.VideoContext)
}

// AnalysisService orchestrates one analysis: metadata fetch, classification,
// prompt, AI completion, parse. It is the single fail-open boundary: every
// provider or parse failure is absorbed into a fallback report, so both
// Analyze methods always return a usable result.
type AnalysisService struct {
	tracer          trace.Tracer
	metadata        MetadataProvider
	ai              TextCompleter // nil when no provider is configured
	cache           MetadataCache
	gen             *synth.Generator
	metadataTimeout time.Duration
	aiTimeout       time.Duration
}

func New(
	tracer trace.Tracer,
	metadata MetadataProvider,
	ai TextCompleter,
	cache MetadataCache,
	gen *synth.Generator,
	metadataTimeout time.Duration,
	aiTimeout time.Duration,
) *AnalysisService {
	return &AnalysisService{
		tracer:          tracer,
		metadata:        metadata,
		ai:              ai,
		cache:           cache,
		gen:             gen,
		metadataTimeout: metadataTimeout,
		aiTimeout:       aiTimeout,
	}
}

// ValidateURL exposes the provider's URL-shape check to the handler layer.
func (s *AnalysisService) ValidateURL(url string) bool {
	return s.metadata.ValidateURL(url)
}

// AnalyzeURL runs the full pipeline for a YouTube URL. The url must already
// have passed ValidateURL; past that point no error escapes.
func (s *AnalysisService) AnalyzeURL(ctx context.Context, url string) (*domain.Report, *domain.AnalysisMeta) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.analyze-url")
	defer span.End()

	vctx := s.resolveContext(ctx, url)
	rep, meta := s.analyze(ctx, vctx)
	meta.VideoURL = url
	meta.ProcessingType = "Full content analysis"
	return rep, meta
}

// AnalyzeUpload analyzes an uploaded file from its filename text. No video
// decoding happens; the filename is all the context there is.
func (s *AnalysisService) AnalyzeUpload(ctx context.Context, filename string) (*domain.Report, *domain.AnalysisMeta) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.analyze-upload")
	defer span.End()

	vctx := &domain.VideoContext{
		Title:  filename,
		Author: "Upload",
	}
	rep, meta := s.analyze(ctx, vctx)
	meta.Filename = filename
	meta.ProcessingType = "Filename analysis"
	return rep, meta
}

// FetchMetadata serves the standalone metadata endpoint, with the same cache
// and timeout as the analysis path.
func (s *AnalysisService) FetchMetadata(ctx context.Context, url string) (*domain.VideoContext, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.fetch-metadata")
	defer span.End()

	if vctx, ok := s.cacheGet(ctx, url); ok {
		return vctx, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.metadataTimeout)
	defer cancel()

	vctx, err := s.metadata.FetchMetadata(fetchCtx, url)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, url, vctx)
	return vctx, nil
}

// TestCompletion pings the configured AI provider.
func (s *AnalysisService) TestCompletion(ctx context.Context) (string, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.test-completion")
	defer span.End()

	if s.ai == nil {
		return "", domain.ErrAIDisabled
	}

	aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()
	return s.ai.Complete(aiCtx, testPrompt)
}

// AIEngine names the active provider for response metadata, empty when none.
func (s *AnalysisService) AIEngine() string {
	if s.ai == nil {
		return ""
	}
	return s.ai.Name()
}

// analyze is the fallback boundary shared by the URL and upload paths.
func (s *AnalysisService) analyze(ctx context.Context, vctx *domain.VideoContext) (*domain.Report, *domain.AnalysisMeta) {
	cls := classifier.Classify(contextText(vctx))
	summary, trades := s.gen.GenerateTrades(cls, vctx.DurationSeconds, vctx.TopComments, vctx.Title)

	meta := &domain.AnalysisMeta{
		AnalysisID:   uuid.NewString(),
		Version:      versionReal,
		AIEngine:     s.AIEngine(),
		FeaturesUsed: analysisFeatures,
		Timestamp:    time.Now().UTC(),
	}

	rep, err := s.completeAndParse(ctx, vctx, cls, summary, trades)
	if err != nil {
		log.Printf("analysis falling back: %v", err)
		rep = report.AssembleFallback(vctx, cls, summary, trades)
		meta.Version = versionFallback
		meta.Fallback = true
		meta.Note = "Análise baseada em detecção inteligente do contexto"
	}
	return rep, meta
}

func (s *AnalysisService) completeAndParse(
	ctx context.Context,
	vctx *domain.VideoContext,
	cls domain.ClassificationResult,
	summary domain.Summary,
	trades []domain.TradeRecord,
) (*domain.Report, error) {
	if s.ai == nil {
		return nil, domain.ErrAIDisabled
	}

	prompt := report.BuildPrompt(vctx, cls, summary, trades)

	aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	raw, err := s.ai.Complete(aiCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}
	rep, err := report.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return rep, nil
}

// resolveContext fetches metadata through the cache and degrades to a generic
// context when the provider fails, keeping the analysis going.
func (s *AnalysisService) resolveContext(ctx context.Context, url string) *domain.VideoContext {
	if vctx, ok := s.cacheGet(ctx, url); ok {
		return vctx
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.metadataTimeout)
	defer cancel()

	vctx, err := s.metadata.FetchMetadata(fetchCtx, url)
	if err != nil {
		log.Printf("metadata fetch failed, using generic context: %v", err)
		return &domain.VideoContext{
			Title:  "Vídeo de Trading",
			Author: "Canal de Trading",
		}
	}
	s.cacheSet(ctx, url, vctx)
	return vctx
}

func (s *AnalysisService) cacheGet(ctx context.Context, url string) (*domain.VideoContext, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, url)
}

func (s *AnalysisService) cacheSet(ctx context.Context, url string, vctx *domain.VideoContext) {
	if s.cache != nil {
		s.cache.Set(ctx, url, vctx)
	}
}

// contextText flattens the video context into the text block the classifier
// and prompt operate on.
func contextText(vctx *domain.VideoContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TITLE: %s\n", vctx.Title)
	fmt.Fprintf(&b, "DESCRIPTION: %s\n", vctx.Description)
	fmt.Fprintf(&b, "AUTHOR: %s\n", vctx.Author)
	fmt.Fprintf(&b, "DURATION: %s\n", report.FormatDuration(vctx.DurationSeconds))
	fmt.Fprintf(&b, "TAGS: %s\n", strings.Join(vctx.Tags, ", "))
	fmt.Fprintf(&b, "COMMENTS: %s\n", strings.Join(vctx.TopComments, " | "))
	return b.String()
}
