package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/Brawl345/pexelsbot/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	response *genai.GenerateContentResponse
	err      error

	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.response, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(text, genai.RoleModel)},
		},
	}
}

func TestTextChat(t *testing.T) {
	gen := &fakeGenerator{response: textResponse("cat")}
	p := &Provider{models: gen, model: "test-model"}

	history := []model.ChatMessage{
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleAssistant, Content: "hello"},
	}

	resp, err := p.TextChat(context.Background(), "translate 猫", history, nil, "be terse")
	require.NoError(t, err)
	assert.Equal(t, "cat", resp.CompletionText)

	assert.Equal(t, "test-model", gen.model)
	require.Len(t, gen.contents, 3)
	assert.Equal(t, string(genai.RoleUser), gen.contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), gen.contents[1].Role)
	assert.Equal(t, "translate 猫", gen.contents[2].Parts[0].Text)
	require.NotNil(t, gen.config.SystemInstruction)
	assert.Equal(t, "be terse", gen.config.SystemInstruction.Parts[0].Text)
}

func TestTextChatWithoutPersona(t *testing.T) {
	gen := &fakeGenerator{response: textResponse("ok")}
	p := &Provider{models: gen, model: DefaultModel}

	_, err := p.TextChat(context.Background(), "x", nil, []string{}, "")
	require.NoError(t, err)
	assert.Nil(t, gen.config.SystemInstruction)
	require.Len(t, gen.contents, 1)
	assert.Len(t, gen.contents[0].Parts, 1)
}

func TestTextChatErrors(t *testing.T) {
	p := &Provider{models: &fakeGenerator{err: errors.New("quota")}, model: DefaultModel}
	_, err := p.TextChat(context.Background(), "x", nil, nil, "")
	assert.Error(t, err)

	p = &Provider{models: &fakeGenerator{response: textResponse("  \n")}, model: DefaultModel}
	_, err = p.TextChat(context.Background(), "x", nil, nil, "")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestBuildContentsWithImages(t *testing.T) {
	contents := buildContents("describe", nil, []string{"https://images.pexels.com/photos/1/pexels-photo-1.png?auto=compress"})
	require.Len(t, contents, 1)
	require.Len(t, contents[0].Parts, 2)
	require.NotNil(t, contents[0].Parts[1].FileData)
	assert.Equal(t, "image/png", contents[0].Parts[1].FileData.MIMEType)
}

type fakeCredentials map[string]string

func (f fakeCredentials) GetAllCredentials() []model.Credential { return nil }
func (f fakeCredentials) GetKey(name string) string             { return f[name] }
func (f fakeCredentials) SetKey(string, string) error           { return nil }
func (f fakeCredentials) DeleteKey(string) error                { return nil }

func TestNewWithoutKey(t *testing.T) {
	_, err := New(context.Background(), fakeCredentials{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
