package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/medley-labs/medley/internal/core/domain"
	"github.com/medley-labs/medley/internal/core/ports"
)

// Client talks to an OpenAI-compatible chat completions endpoint. It serves
// both intent classification and song list generation.
type Client struct {
	http  *resty.Client
	model string
}

var _ ports.IntentClassifier = (*Client)(nil)
var _ ports.SongListGenerator = (*Client)(nil)

func NewClient(baseURL, apiKey, model string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	return &Client{http: c, model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Schema json.RawMessage `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
	} `json:"choices"`
}

type playlistPayload struct {
	Playlist []domain.TrackRequest `json:"playlist"`
}

// ClassifyIntent maps the message onto one of the known intent labels.
// Labels outside the closed set collapse to IntentNone.
func (c *Client) ClassifyIntent(ctx context.Context, message string) (domain.IntentKind, error) {
	content, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: assistantSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(classifyPrompt, message)},
		},
	})
	if err != nil {
		return domain.IntentNone, fmt.Errorf("classify intent: %w", err)
	}

	label := strings.Trim(strings.ToLower(strings.TrimSpace(content)), "'\"")
	switch label {
	case string(domain.IntentRecs):
		return domain.IntentRecs, nil
	case string(domain.IntentFavorite):
		return domain.IntentFavorite, nil
	default:
		return domain.IntentNone, nil
	}
}

// GenerateSongList asks for a structured playlist for the given request. The
// payload is parsed strictly so schema drift fails loudly instead of silently
// dropping fields.
func (c *Client) GenerateSongList(ctx context.Context, message string) ([]domain.TrackRequest, error) {
	temp := 0.0
	content, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: playlistSystemPrompt},
			{Role: "user", Content: message + songListSuffix},
		},
		Temperature: &temp,
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "playlist",
				Strict: true,
				Schema: playlistSchema,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate song list: %w", err)
	}

	var payload playlistPayload
	dec := json.NewDecoder(bytes.NewReader([]byte(content)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("generate song list: parse completion: %w", err)
	}
	for i, req := range payload.Playlist {
		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Artist) == "" {
			return nil, fmt.Errorf("generate song list: entry %d has an empty title or artist", i)
		}
	}
	return payload.Playlist, nil
}

// FavoriteArtist extracts the artist name the message identifies as the
// user's favorite.
func (c *Client) FavoriteArtist(ctx context.Context, message string) (string, error) {
	content, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: assistantSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(favoriteArtistPrompt, message)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("favorite artist: %w", err)
	}
	return strings.TrimSpace(content), nil
}

func (c *Client) complete(ctx context.Context, req chatRequest) (string, error) {
	var body chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&body).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", &domain.ProviderError{
			Op:     "chat completion",
			Status: resp.StatusCode(),
			Body:   string(resp.Body()),
		}
	}
	if len(body.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	choice := body.Choices[0].Message
	if choice.Refusal != "" {
		log.Warn().Str("refusal", choice.Refusal).Msg("completion refused")
		return "", &domain.RefusalError{Reason: choice.Refusal}
	}
	return choice.Content, nil
}
