package intelligence

import (
	"context"
	"testing"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns canned responses and records prompts.
type scriptedClient struct {
	response string
	err      error
	lastReq  llm.GenerateRequest
}

func (c *scriptedClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.lastReq = req
	if c.err != nil {
		return nil, c.err
	}
	return &llm.GenerateResponse{Text: c.response, Model: "test"}, nil
}

func TestSuggestPlaceholderValues(t *testing.T) {
	client := &scriptedClient{response: `{"CLIENT_NOM":"Joan Marc","PROJ_ADRECA":"Carrer Major, 1"}`}
	svc := NewSuggestService(client, nil)

	got, err := svc.SuggestPlaceholderValues(context.Background(),
		"Casa Pere", "Habitatge unifamiliar", []string{"CLIENT_NOM", "PROJ_ADRECA"})
	require.NoError(t, err)

	assert.Equal(t, "Joan Marc", got["CLIENT_NOM"])
	assert.Equal(t, llm.TaskSuggestValues, client.lastReq.Task)
	assert.True(t, client.lastReq.JSONResponse)
	assert.Contains(t, client.lastReq.UserPrompt, "CLIENT_NOM, PROJ_ADRECA")
}

func TestSuggestPlaceholderValues_DropsUnrequestedKeys(t *testing.T) {
	// The merge downstream must stay pure, so extra keys the model
	// invents are discarded here.
	client := &scriptedClient{response: `{"CLIENT_NOM":"Joan","INVENTADA":"x"}`}
	svc := NewSuggestService(client, nil)

	got, err := svc.SuggestPlaceholderValues(context.Background(), "p", "d", []string{"CLIENT_NOM"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"CLIENT_NOM": "Joan"}, got)
}

func TestSuggestPlaceholderValues_NoKeys(t *testing.T) {
	client := &scriptedClient{}
	svc := NewSuggestService(client, nil)

	got, err := svc.SuggestPlaceholderValues(context.Background(), "p", "d", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, client.lastReq.Task, "no call should be made without keys")
}

func TestSuggestPlaceholderValues_ClientError(t *testing.T) {
	client := &scriptedClient{err: llm.ErrUnavailable}
	svc := NewSuggestService(client, nil)

	_, err := svc.SuggestPlaceholderValues(context.Background(), "p", "d", []string{"A"})
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestSuggestChapters(t *testing.T) {
	client := &scriptedClient{response: `[{"title":"01 Memòria Descriptiva","description":"Objecte i emplaçament"}]`}
	svc := NewSuggestService(client, nil)

	got, err := svc.SuggestChapters(context.Background(), "Habitatge unifamiliar amb piscina")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "01 Memòria Descriptiva", got[0].Title)
}

func TestSuggestChapters_UntitledRejected(t *testing.T) {
	client := &scriptedClient{response: `[{"title":""}]`}
	svc := NewSuggestService(client, nil)

	_, err := svc.SuggestChapters(context.Background(), "desc")
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestSummarize(t *testing.T) {
	client := &scriptedClient{response: "Benvolguts,\n\nEl present document..."}
	svc := NewSuggestService(client, nil)

	p := &domain.Project{Name: "Casa Pere"}
	_, err := p.AddChapter("01 Memòria")
	require.NoError(t, err)
	_, err = p.AddPlaceholder("client nom")
	require.NoError(t, err)

	text, err := svc.Summarize(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, text, "Benvolguts")
	assert.Contains(t, client.lastReq.UserPrompt, "Casa Pere")
	assert.Contains(t, client.lastReq.UserPrompt, "CLIENT_NOM")
	assert.Contains(t, client.lastReq.UserPrompt, "01 Memòria")
}

func TestSummarize_EmptyResponse(t *testing.T) {
	client := &scriptedClient{response: "   "}
	svc := NewSuggestService(client, nil)

	_, err := svc.Summarize(context.Background(), &domain.Project{Name: "x"})
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}
