package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/duskmoor/realmd/internal/game"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Service generates NPC replies. When a generative model is configured it
// writes lines in the NPC's voice; without one, or when generation fails,
// it falls back to canned responses so NPCs never go mute.
type Service struct {
	model *genai.GenerativeModel
}

// NewService builds the dialogue service. An empty API key disables
// generation entirely and is a supported configuration.
func NewService(ctx context.Context, apiKey, modelName string) (*Service, error) {
	s := &Service{}
	if apiKey == "" {
		slog.Info("dialogue generation disabled, using canned responses")
		return s, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating dialogue client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	s.model = client.GenerativeModel(modelName)
	return s, nil
}

// Reply produces the NPC's answer to what the player said. The said text
// may be empty for a plain greeting.
func (s *Service) Reply(ctx context.Context, npc *game.NPC, username, said string) string {
	if s.model != nil {
		if line, err := s.generate(ctx, npc, username, said); err == nil {
			return line
		} else {
			slog.Warn("dialogue generation failed", "npc", npc.Id, "err", err)
		}
	}
	return cannedReply(npc, said)
}

func (s *Service) generate(ctx context.Context, npc *game.NPC, username, said string) (string, error) {
	prompt := fmt.Sprintf(
		"You are %s, a character in a fantasy town. Personality: %s. "+
			"A traveler named %s says to you: %q. "+
			"Reply in character with one or two short sentences of spoken dialogue only.",
		npc.Name, npc.Spec.Personality, username, said)
	if said == "" {
		prompt = fmt.Sprintf(
			"You are %s, a character in a fantasy town. Personality: %s. "+
				"A traveler named %s approaches you. "+
				"Greet them in character with one short sentence of spoken dialogue only.",
			npc.Name, npc.Spec.Personality, username)
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part %T", resp.Candidates[0].Content.Parts[0])
	}
	line := strings.TrimSpace(string(text))
	if line == "" {
		return "", fmt.Errorf("blank response")
	}
	return line, nil
}

// cannedReply is the deterministic fallback voice.
func cannedReply(npc *game.NPC, said string) string {
	if said == "" && npc.Spec.Greeting != "" {
		return npc.Spec.Greeting
	}
	if said == "" {
		return fmt.Sprintf("%s nods at you in greeting.", npc.Name)
	}
	return fmt.Sprintf("%s considers your words for a moment, then shrugs.", npc.Name)
}
