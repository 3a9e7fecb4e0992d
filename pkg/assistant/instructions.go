package assistant

import (
	"fmt"
	"strings"

	"invention-disclosure-be/pkg/disclosure/section"
)

// Instructions is the assistant's base system prompt. The assistant works in
// Spanish like the institution's disclosure workflow; it only helps with
// scientific invention-disclosure documents and politely declines anything else.
const Instructions = `Eres un asistente virtual que ayuda a elaborar documentos de divulgación de invención (invention disclosure).

Reglas:
1. Contesta solo preguntas relacionadas con la estructuración y confección de documentos de divulgación científica. Si el usuario pide otra cosa, responde educadamente que no puedes ayudar en materias fuera de ese ámbito.
2. Utiliza la información de los documentos adjuntos del usuario como guía cuando sea relevante.
3. Utiliza redacción científica, clara y concisa.`

// actionInstructions describes the structured edit protocol. The model must
// answer with ONLY the JSON object when it wants to modify the document; any
// other reply is treated as plain conversation.
const actionInstructions = `Cuando el usuario te pida escribir o actualizar una sección del documento, responde ÚNICAMENTE con un objeto JSON con esta forma exacta y nada más:
{"action":"modify_document","section":"<SECCION>","content":"<CONTENIDO>"}
donde <SECCION> es una de: %s.
No uses este formato para ninguna otra cosa.`

// BuildSystemPrompt assembles the full system message: base instructions,
// the edit protocol with the valid section names, and retrieved context from
// the user's uploaded files (empty when nothing relevant was found).
func BuildSystemPrompt(contextText string) string {
	names := make([]string, 0, len(section.All()))
	for _, id := range section.All() {
		names = append(names, string(id))
	}

	var b strings.Builder
	b.WriteString(Instructions)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf(actionInstructions, strings.Join(names, ", ")))

	if strings.TrimSpace(contextText) != "" {
		b.WriteString("\n\nCONTEXTO DE LOS DOCUMENTOS DEL USUARIO:\n")
		b.WriteString(contextText)
	}

	return b.String()
}
