// ABOUTME: Conversational brand assistant with rolling chat memory
// ABOUTME: Replays recent history so the model keeps conversational context
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/bizdesk/bizdesk/models"
)

// Chat sends a message to the brand assistant with the stored chat history
// as context and returns the model's reply.
func (c *Client) Chat(ctx context.Context, brand models.BrandProfile, message string) (string, error) {
	system := fmt.Sprintf(
		"You are the marketing brain for %s, a business in %s. Target audience: %s. Voice: %s, %s.",
		brand.Name, brand.Industry, brand.TargetAudience,
		brand.Psychology.Archetype, brand.Psychology.Tone)

	var contents []*genai.Content
	for _, turn := range brand.Memory.ChatHistory {
		role := genai.Role(genai.RoleUser)
		if turn.Role == "model" || turn.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
