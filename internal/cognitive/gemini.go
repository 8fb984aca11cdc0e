package cognitive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"photostack/internal/http-api/models"
)

// ImageAnalysis carries the enrichment extracted from an uploaded photo.
type ImageAnalysis struct {
	Tags           []string `json:"tags"`
	Description    string   `json:"description"`
	DominantColors []string `json:"dominantColors"`
	IsAdultContent bool     `json:"isAdultContent"`
}

// SentimentResult classifies a piece of comment text.
type SentimentResult struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// ImageAnalyzer extracts tags and a description from image bytes.
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, mimeType string, data []byte) (ImageAnalysis, error)
}

// SentimentAnalyzer classifies the sentiment of text.
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string) (SentimentResult, error)
}

// DefaultImageAnalysis is the neutral result used when analysis is
// unavailable; uploads must never fail because enrichment did.
func DefaultImageAnalysis() ImageAnalysis {
	return ImageAnalysis{
		Tags:           []string{},
		Description:    "",
		DominantColors: []string{},
		IsAdultContent: false,
	}
}

// DefaultSentiment is the neutral classification used when the analyzer
// is unavailable.
func DefaultSentiment() SentimentResult {
	return SentimentResult{Sentiment: models.SentimentUnknown, Score: 0}
}

// GeminiService implements both analyzers on top of the Gemini API.
// A service built without an API key degrades to the default results.
type GeminiService struct {
	client *genai.Client
	model  string
}

func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if apiKey == "" {
		slog.Warn("gemini api key not set, cognitive features disabled")
		return &GeminiService{model: model}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiService{client: client, model: model}, nil
}

const imagePrompt = `Analyze this image and respond with only a JSON object in this exact shape:
{"tags": ["tag1", "tag2"], "description": "one sentence", "dominantColors": ["color1", "color2"], "isAdultContent": false}
Use up to 10 lowercase tags describing subjects, setting and mood.`

func (g *GeminiService) AnalyzeImage(ctx context.Context, mimeType string, data []byte) (ImageAnalysis, error) {
	if g.client == nil {
		return DefaultImageAnalysis(), nil
	}

	subtype := strings.TrimPrefix(mimeType, "image/")
	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(subtype, data),
		genai.Text(imagePrompt),
	)
	if err != nil {
		return DefaultImageAnalysis(), fmt.Errorf("gemini image analysis failed: %w", err)
	}

	var analysis ImageAnalysis
	if err := json.Unmarshal([]byte(extractText(resp)), &analysis); err != nil {
		return DefaultImageAnalysis(), fmt.Errorf("unexpected gemini response: %w", err)
	}
	if analysis.Tags == nil {
		analysis.Tags = []string{}
	}
	if analysis.DominantColors == nil {
		analysis.DominantColors = []string{}
	}
	return analysis, nil
}

const sentimentPrompt = `Classify the sentiment of the following comment. Respond with only a JSON object:
{"sentiment": "positive|neutral|negative", "score": 0.0}
Score is the confidence between 0 and 1. Comment: `

func (g *GeminiService) AnalyzeSentiment(ctx context.Context, text string) (SentimentResult, error) {
	if g.client == nil {
		return DefaultSentiment(), nil
	}

	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(sentimentPrompt+text))
	if err != nil {
		return DefaultSentiment(), fmt.Errorf("gemini sentiment analysis failed: %w", err)
	}

	var result SentimentResult
	if err := json.Unmarshal([]byte(extractText(resp)), &result); err != nil {
		return DefaultSentiment(), fmt.Errorf("unexpected gemini response: %w", err)
	}
	switch result.Sentiment {
	case models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative:
	default:
		result.Sentiment = models.SentimentUnknown
	}
	return result, nil
}

func (g *GeminiService) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// extractText flattens the first candidate's text parts and strips the
// markdown code fence Gemini sometimes wraps JSON in.
func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		break
	}
	text := strings.TrimSpace(sb.String())
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
