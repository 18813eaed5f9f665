package ai

// Package ai wraps the external completion backends behind a single Answerer
// interface. Each call is independent and stateless; no conversation history
// is kept between questions.

import (
	"context"
	"fmt"
)

// Answerer produces a natural-language answer for a question about the given
// document text via a single completion call.
type Answerer interface {
	Answer(ctx context.Context, question, documentText string) (string, error)
}

// answerPrompt is the fixed template for every completion call. The full
// document text is sent verbatim as context, with no truncation or chunking;
// documents larger than the model's context window fail at the provider.
const answerPrompt = `Você é um assistente especializado em análise de documentos. Com base no contexto fornecido, responda a pergunta do usuário de forma clara e objetiva.

Contexto do documento:
%s

Pergunta do usuário: %s

Instruções:
- Responda apenas com base nas informações fornecidas no contexto
- Se a informação não estiver disponível, informe claramente
- Seja direto e objetivo
- Use português do Brasil

Resposta:`

// BuildPrompt renders the completion prompt for one question.
func BuildPrompt(question, documentText string) string {
	return fmt.Sprintf(answerPrompt, documentText, question)
}
