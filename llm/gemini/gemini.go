package gemini

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/Brawl345/pexelsbot/logger"
	"github.com/Brawl345/pexelsbot/model"
	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.0-flash"
	Temperature  = 0.2
	Timeout      = 30 * time.Second
)

var (
	log = logger.New("gemini")

	ErrMissingAPIKey = errors.New("missing gemini api key")
	ErrEmptyResponse = errors.New("empty response from gemini")
)

type (
	// generator is satisfied by *genai.Models
	generator interface {
		GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	}

	Provider struct {
		models generator
		model  string
	}
)

// New builds a provider from the google_gemini_api_key and google_gemini_model
// credentials.
func New(ctx context.Context, credentialService model.CredentialService) (*Provider, error) {
	apiKey := credentialService.GetKey("google_gemini_api_key")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	modelName := credentialService.GetKey("google_gemini_model")
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			Timeout: genai.Ptr(Timeout),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	log.Debug().Str("model", modelName).Msg("Gemini provider ready")

	return &Provider{
		models: client.Models,
		model:  modelName,
	}, nil
}

func (p *Provider) TextChat(ctx context.Context, prompt string, history []model.ChatMessage, imageURLs []string, systemPrompt string) (*model.LLMResponse, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(Temperature)),
	}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	contents := buildContents(prompt, history, imageURLs)

	response, err := p.models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text := response.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	return &model.LLMResponse{CompletionText: text}, nil
}

func buildContents(prompt string, history []model.ChatMessage, imageURLs []string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, entry := range history {
		var role genai.Role = genai.RoleUser
		if entry.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(entry.Content, role))
	}

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	for _, imageURL := range imageURLs {
		parts = append(parts, genai.NewPartFromURI(imageURL, imageMimeType(imageURL)))
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	return contents
}

func imageMimeType(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err == nil {
		if mimeType := mime.TypeByExtension(strings.ToLower(path.Ext(u.Path))); strings.HasPrefix(mimeType, "image/") {
			return mimeType
		}
	}
	return "image/jpeg"
}
