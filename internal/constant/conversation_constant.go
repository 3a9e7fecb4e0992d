package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// Greeting persisted as the first assistant turn of every conversation.
	ConversationGreeting = `¡Hola! Soy tu asistente para la divulgación de invenciones. Cuéntame sobre tu invención y juntos completaremos el documento sección por sección.`

	// Confirmation and rejection templates for document edits. The %s is
	// the canonical section identifier.
	EditAppliedReply      = `He actualizado la sección %s del documento.`
	EditUnknownSection    = `No reconozco la sección "%s" del documento, así que no he realizado cambios. Las secciones disponibles son: %s.`
	EditPlaceholderBroken = `No he podido actualizar la sección %s porque la plantilla del documento está dañada. No se han realizado cambios.`
)
