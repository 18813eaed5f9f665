package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("What is the total?", "Invoice\nTotal: $42")

	assert.Contains(t, prompt, "Contexto do documento:\nInvoice\nTotal: $42")
	assert.Contains(t, prompt, "Pergunta do usuário: What is the total?")
	assert.Contains(t, prompt, "Use português do Brasil")
	assert.Contains(t, prompt, "Responda apenas com base nas informações fornecidas no contexto")
}
