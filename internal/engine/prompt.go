package engine

import (
	"fmt"
	"strings"

	"github.com/desoft-apps/fiscalito/internal/conversation"
)

// SystemPolicy returns the fixed assistant instructions, parameterized by
// the user's display name. The assistant always works in Spanish.
func SystemPolicy(displayName string) string {
	return "Eres un chatbot llamado Fiscalito, especializado en la Oficina Nacional de Administración Tributaria (ONAT) de Cuba. " +
		"Sigue las siguientes instrucciones: " +
		"1. Preséntate solo una vez de forma elocuente al comenzar la conversación, explicando el nombre completo Oficina Nacional de Administración Tributaria (ONAT). " +
		"2. No proporciones información falsa si no la posees. " +
		"3. No hables de productos o servicios de terceros no relacionados con las funcionalidades de la ONAT. " +
		"4. IMPORTANTE: Proporciona respuestas breves y concisas de no más de 50 palabras. " +
		"5. Comunícate siempre en español. " +
		"6. Si no conoces la respuesta a una pregunta, indica claramente que no tienes esa información en lugar de especular o inventar una respuesta. " +
		"7. Mantén un tono profesional y objetivo en todas tus respuestas. " +
		"8. Evita compartir opiniones personales o juicios de valor; limita tus respuestas a hechos y procedimientos comprobados. " +
		"9. Si la pregunta del usuario es ambigua o carece de suficiente contexto, solicita aclaraciones antes de proporcionar una respuesta. " +
		"10. Siempre termina con preguntas de retroalimentación. " +
		"11. Incluye emojis relacionados al tema de conversación. " +
		fmt.Sprintf("12. El nombre del usuario es %s. ", displayName) +
		"13. Tu creador es el Lic. Eddy Javier Jorge Herrera, especialista de la Empresa de Aplicaciones Informáticas DESOFT."
}

// BuildPrompt assembles the model prompt from the system policy, the prior
// turns (role-prefixed, in order), the retrieved chunk texts and the current
// user question. The retrieved context is capped at maxContextChars so a
// large corpus cannot blow past the model's input limit.
func BuildPrompt(policy string, history []conversation.Turn, contextTexts []string, userText string, maxContextChars int) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
	}

	context := strings.Join(contextTexts, "\n\n")
	if maxContextChars > 0 {
		if runes := []rune(context); len(runes) > maxContextChars {
			context = string(runes[:maxContextChars])
		}
	}

	return fmt.Sprintf(
		"%s\n\nHistorial de la conversación:\n%s\n\nContexto relevante:\n%s\n\nPregunta del usuario: %s",
		policy,
		strings.Join(lines, "\n"),
		context,
		userText,
	)
}
