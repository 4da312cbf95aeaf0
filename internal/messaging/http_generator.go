package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPGenerator asks a text-generation service for the message. The service
// receives {"kind", "prompt"} and answers {"text"}.
type HTTPGenerator struct {
	url       string
	apiKey    string
	salonName string
	client    *http.Client
}

func NewHTTPGenerator(url, apiKey, salonName string, client *http.Client) *HTTPGenerator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGenerator{
		url:       url,
		apiKey:    apiKey,
		salonName: salonName,
		client:    client,
	}
}

type generateRequest struct {
	Kind   string `json:"kind"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (g *HTTPGenerator) ConfirmationMessage(ctx context.Context, clientName, date, hour string) (string, error) {
	prompt := fmt.Sprintf(
		"Escreva uma mensagem curta e calorosa de %s confirmando o agendamento de tranças de %s para %s às %s.",
		g.salonName, clientName, DisplayDate(date), hour,
	)
	return g.generate(ctx, "confirmation", prompt)
}

func (g *HTTPGenerator) RetentionMessage(ctx context.Context, clientName string, lastSession *string) (string, error) {
	last := "há algum tempo"
	if lastSession != nil && *lastSession != "" {
		last = "em " + DisplayDate(*lastSession)
	}
	prompt := fmt.Sprintf(
		"Escreva uma mensagem curta de %s convidando %s, que fez as tranças pela última vez %s, para agendar uma manutenção.",
		g.salonName, clientName, last,
	)
	return g.generate(ctx, "retention", prompt)
}

func (g *HTTPGenerator) generate(ctx context.Context, kind, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Kind: kind, Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("message service: status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err != nil {
		return "", fmt.Errorf("message service: decode: %w", err)
	}

	return strings.TrimSpace(out.Text), nil
}
