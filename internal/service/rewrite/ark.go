package rewrite

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// ArkProvider runs rewrites through an eino chat chain backed by an Ark
// model endpoint.
type ArkProvider struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewArkProvider compiles the prompt-template -> chat-model chain once at
// startup.
func NewArkProvider(ctx context.Context, chatModel model.ChatModel) (*ArkProvider, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.UserMessage("{prompt}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile rewrite chain: %w", err)
	}

	return &ArkProvider{chain: runnable}, nil
}

// Name implements Provider.
func (p *ArkProvider) Name() string { return "ark" }

// Available implements Provider.
func (p *ArkProvider) Available(context.Context) bool { return p.chain != nil }

// Generate implements Provider.
func (p *ArkProvider) Generate(ctx context.Context, promptText string) (string, error) {
	response, err := p.chain.Invoke(ctx, map[string]any{"prompt": promptText})
	if err != nil {
		return "", fmt.Errorf("run rewrite chain: %w", err)
	}
	return response.Content, nil
}
