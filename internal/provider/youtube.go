// Package provider holds the clients for the two external collaborators: the
// video metadata source and the generative AI backends. Every failure is
// wrapped in domain.ProviderError so the service layer can absorb it.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"tradevision/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	maxTags         = 10
	defaultDataAPI  = "https://www.googleapis.com/youtube/v3"
	defaultOEmbedAPI = "https://www.youtube.com/oembed"
)

var (
	watchURLPattern = regexp.MustCompile(
		`^(?:https?://)?(?:www\.|m\.)?(?:youtube\.com/(?:watch\?.*v=|shorts/|live/|embed/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

	isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)
)

// Simulated top comments, attached when real comment extraction is not
// available (a comments API integration would be needed for real ones).
var simulatedComments = []string{
	"Excelente análise técnica!",
	"Consegui 50 pips seguindo essa estratégia",
	"Melhor explicação de forex que já vi",
}

type YouTubeProvider struct {
	tracer    trace.Tracer
	client    *http.Client
	apiKey    string
	dataAPI   string
	oembedAPI string
}

func NewYouTubeProvider(tracer trace.Tracer, apiKey string) *YouTubeProvider {
	return &YouTubeProvider{
		tracer:    tracer,
		client:    &http.Client{Timeout: 15 * time.Second},
		apiKey:    apiKey,
		dataAPI:   defaultDataAPI,
		oembedAPI: defaultOEmbedAPI,
	}
}

// ValidateURL reports whether the url looks like a YouTube video link.
func (p *YouTubeProvider) ValidateURL(raw string) bool {
	return watchURLPattern.MatchString(raw)
}

func extractVideoID(raw string) string {
	m := watchURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// FetchMetadata resolves video metadata for the url. With an API key it uses
// the Data API (full metadata including duration and tags); without one it
// falls back to the keyless oEmbed endpoint, which only carries title and
// author. Simulated top comments are attached either way.
func (p *YouTubeProvider) FetchMetadata(ctx context.Context, raw string) (*domain.VideoContext, error) {
	ctx, span := p.tracer.Start(ctx, "youtube-provider.fetch-metadata")
	defer span.End()

	id := extractVideoID(raw)
	if id == "" {
		return nil, &domain.ProviderError{Provider: "youtube", Err: domain.ErrInvalidURL}
	}

	var (
		vctx *domain.VideoContext
		err  error
	)
	if p.apiKey != "" {
		vctx, err = p.fetchDataAPI(ctx, id)
	} else {
		vctx, err = p.fetchOEmbed(ctx, raw)
	}
	if err != nil {
		return nil, err
	}

	if len(vctx.Description) > domain.DescriptionMaxLen {
		vctx.Description = vctx.Description[:domain.DescriptionMaxLen]
	}
	if len(vctx.Tags) > maxTags {
		vctx.Tags = vctx.Tags[:maxTags]
	}
	vctx.TopComments = simulatedComments
	vctx.Extracted = true
	return vctx, nil
}

type dataAPIResponse struct {
	Items []struct {
		Snippet struct {
			Title        string   `json:"title"`
			Description  string   `json:"description"`
			ChannelTitle string   `json:"channelTitle"`
			Tags         []string `json:"tags"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

func (p *YouTubeProvider) fetchDataAPI(ctx context.Context, videoID string) (*domain.VideoContext, error) {
	endpoint := fmt.Sprintf("%s/videos?id=%s&part=snippet,contentDetails&key=%s",
		p.dataAPI, url.QueryEscape(videoID), url.QueryEscape(p.apiKey))

	var out dataAPIResponse
	if err := p.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, &domain.ProviderError{Provider: "youtube", Err: fmt.Errorf("video %s not found", videoID)}
	}

	item := out.Items[0]
	return &domain.VideoContext{
		Title:           item.Snippet.Title,
		Description:     item.Snippet.Description,
		Author:          item.Snippet.ChannelTitle,
		DurationSeconds: parseISODuration(item.ContentDetails.Duration),
		Tags:            item.Snippet.Tags,
	}, nil
}

type oembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

func (p *YouTubeProvider) fetchOEmbed(ctx context.Context, videoURL string) (*domain.VideoContext, error) {
	endpoint := fmt.Sprintf("%s?url=%s&format=json", p.oembedAPI, url.QueryEscape(videoURL))

	var out oembedResponse
	if err := p.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &domain.VideoContext{
		Title:  out.Title,
		Author: out.AuthorName,
	}, nil
}

func (p *YouTubeProvider) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &domain.ProviderError{Provider: "youtube", Err: err}
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return &domain.ProviderError{Provider: "youtube", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.ProviderError{
			Provider: "youtube",
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.ProviderError{Provider: "youtube", Err: err}
	}
	return nil
}

// parseISODuration decodes the Data API's ISO-8601 duration (PT#H#M#S).
// Unparseable input yields 0, which downstream treats as unknown duration.
func parseISODuration(iso string) int {
	m := isoDurationPattern.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	total := 0
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0
		}
		total += n * mult
	}
	return total
}
