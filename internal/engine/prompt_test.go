package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/desoft-apps/fiscalito/internal/conversation"
)

func TestSystemPolicyNamesTheUser(t *testing.T) {
	policy := SystemPolicy("Ana")
	assert.Contains(t, policy, "Fiscalito")
	assert.Contains(t, policy, "El nombre del usuario es Ana.")
}

func TestBuildPromptSections(t *testing.T) {
	history := []conversation.Turn{
		{Role: conversation.RoleUser, Content: "¿Qué es la ONAT?"},
		{Role: conversation.RoleAssistant, Content: "Es la administración tributaria."},
	}
	prompt := BuildPrompt("POLÍTICA", history, []string{"doc uno", "doc dos"}, "¿Y el Vector Fiscal?", 0)

	assert.Equal(t,
		"POLÍTICA\n\n"+
			"Historial de la conversación:\n"+
			"user: ¿Qué es la ONAT?\n"+
			"assistant: Es la administración tributaria.\n\n"+
			"Contexto relevante:\n"+
			"doc uno\n\ndoc dos\n\n"+
			"Pregunta del usuario: ¿Y el Vector Fiscal?",
		prompt,
	)
}

func TestBuildPromptEmptyHistoryAndContext(t *testing.T) {
	prompt := BuildPrompt("P", nil, nil, "hola", 0)
	assert.Contains(t, prompt, "Historial de la conversación:\n\n")
	assert.Contains(t, prompt, "Contexto relevante:\n\n")
	assert.True(t, strings.HasSuffix(prompt, "Pregunta del usuario: hola"))
}

func TestBuildPromptTruncatesContext(t *testing.T) {
	long := strings.Repeat("ñ", 50)
	prompt := BuildPrompt("P", nil, []string{long}, "q", 10)

	assert.Contains(t, prompt, "Contexto relevante:\n"+strings.Repeat("ñ", 10)+"\n\n")
	assert.NotContains(t, prompt, strings.Repeat("ñ", 11))
}
