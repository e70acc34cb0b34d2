package llm

// DefaultModel is used when a chat request carries no model name.
const DefaultModel = "llama3-70b-8192"

// ModelOptions maps display names to backend model identifiers. Served
// verbatim by GET /models.
var ModelOptions = map[string]string{
	"Gemma2-9B":    "gemma2-9b-it",
	"Llama3-8b":    "llama3-8b-8192",
	"Llama3-70B":   "llama3-70b-8192",
	"Mixtral-8x7B": "mixtral-8x7b-32768",
}
