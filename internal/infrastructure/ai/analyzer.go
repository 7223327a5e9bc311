// Package ai integrates the OpenAI API for legal document review.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/esquire/backend/internal/domain/legal"
	infraconfig "github.com/esquire/backend/internal/infrastructure/config"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const systemPromptFormat = `You are an expert criminal defense attorney specializing in constitutional law and police procedure analysis.
Analyze the provided %s for:
1. Internal inconsistencies or contradictions
2. Constitutional violations (4th, 5th, 6th, 14th Amendment issues)
3. Police procedure violations
4. Credibility issues
5. Potential legal arguments for the defense

Be thorough and specific. Flag anything that could be used to challenge the document's reliability or admissibility.`

const userPromptFormat = `Analyze this %s:

%s

Provide a detailed JSON response with:
1. "inconsistencies": Array of specific contradictions or questionable statements
2. "constitutionalIssues": Array of potential constitutional violations
3. "suggestedKeywords": Array of legal keywords for case law research
4. "legalArguments": Array of potential defense arguments
5. "summary": Overall assessment and strategy recommendations

Format each finding with: text (quoted from document), issue, severity (high/medium/low), and detailed explanation.`

// DocumentAnalyzer reviews a document's text and produces structured findings
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, documentText, documentType string) (*legal.AnalysisFindings, error)
}

// chatCompleter is the slice of the OpenAI client the analyzer needs
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIAnalyzer implements DocumentAnalyzer against the OpenAI chat API
type OpenAIAnalyzer struct {
	client      chatCompleter
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// NewOpenAIAnalyzer creates an analyzer from configuration
func NewOpenAIAnalyzer(cfg infraconfig.OpenAIConfig, logger *zap.Logger) *OpenAIAnalyzer {
	return &OpenAIAnalyzer{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// Analyze sends the document to the model and parses the JSON findings
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, documentText, documentType string) (*legal.AnalysisFindings, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPromptFormat, documentType)},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPromptFormat, documentType, documentText)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
	if err != nil {
		a.logger.Error("OpenAI completion failed", zap.Error(err))
		return nil, fmt.Errorf("failed to analyze document: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("failed to analyze document: empty response")
	}

	var findings legal.AnalysisFindings
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &findings); err != nil {
		a.logger.Error("OpenAI response was not valid JSON", zap.Error(err))
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	return &findings, nil
}

var _ DocumentAnalyzer = (*OpenAIAnalyzer)(nil)
