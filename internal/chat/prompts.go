package chat

import "fmt"

const defaultResponseLanguage = "korean"

const translateInstruction = "Translate the user's question into English. " +
	"Reply with the translated question only, no commentary."

// contextMessage embeds the retrieved catalog entries into a system message.
func contextMessage(context string) string {
	return "game : " + context
}

// personaMessage fixes the assistant's persona, response language, and
// formatting rules for every turn.
func personaMessage(language string) string {
	return fmt.Sprintf(`You are a game recommendation expert. You must answer in the following language: %s.
- Ground every recommendation in the provided game catalog entries.
- When the catalog has nothing relevant, say so instead of inventing games.
- Keep answers short and conversational.`, language)
}
