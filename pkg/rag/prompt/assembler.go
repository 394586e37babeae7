package prompt

import (
	"strings"

	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/pkg/llm"
)

// NoContextMarker is substituted when retrieval produced nothing.
const NoContextMarker = "No context available."

// TruncationMarker is appended when the context region is cut at
// MaxContextLength.
const TruncationMarker = "..."

// Assembler merges retrieved chunks, bounded history and the current
// query into the chat messages sent to the generation model. It is
// pure: no I/O, and identical inputs always produce identical output.
type Assembler struct {
	maxContextLength int
	historyWindow    int
}

func NewAssembler(maxContextLength, historyWindow int) *Assembler {
	return &Assembler{
		maxContextLength: maxContextLength,
		historyWindow:    historyWindow,
	}
}

// Build composes the prompt: the instruction template with the
// (possibly truncated) context substituted in, then at most
// historyWindow recent turns in chronological order, then the query as
// the final user turn. Only the variable context region is ever
// truncated, never the template itself.
func (a *Assembler) Build(retrieved []*contract.ScoredChunk, history []llm.Message, query string) []llm.Message {
	contextText := a.buildContext(retrieved)

	messages := make([]llm.Message, 0, a.historyWindow+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: a.buildSystemPrompt(contextText),
	})

	bounded := history
	if len(bounded) > a.historyWindow {
		bounded = bounded[len(bounded)-a.historyWindow:]
	}
	for _, m := range bounded {
		if m.Role == "" || m.Content == "" {
			continue
		}
		messages = append(messages, m)
	}

	messages = append(messages, llm.Message{Role: "user", Content: query})
	return messages
}

func (a *Assembler) buildContext(retrieved []*contract.ScoredChunk) string {
	if len(retrieved) == 0 {
		return NoContextMarker
	}

	texts := make([]string, len(retrieved))
	for i, r := range retrieved {
		texts[i] = r.Chunk.ChunkText
	}
	contextText := strings.Join(texts, "\n")

	if a.maxContextLength > 0 {
		if runes := []rune(contextText); len(runes) > a.maxContextLength {
			contextText = string(runes[:a.maxContextLength]) + TruncationMarker
		}
	}
	return contextText
}

func (a *Assembler) buildSystemPrompt(contextText string) string {
	var prompt strings.Builder

	prompt.WriteString("You are a system assistant that knows this system well and answers questions in a formal, clear, accurate, and polite manner.\n")
	prompt.WriteString("Always base your answer only on the given context and conversation history appropriately.\n")
	prompt.WriteString("If the context and history do not contain enough information, please provide a concise summary instead.\n\n")

	prompt.WriteString("Context:\n")
	prompt.WriteString(contextText)
	prompt.WriteString("\n\n")

	prompt.WriteString("Answer:\n")
	prompt.WriteString("- If the answer is long, provide it in a numbered list format (1., 2., 3.).\n")
	prompt.WriteString("- If the answer is short, reply in a single polite sentence without numbering.\n")
	prompt.WriteString("- If token length is limited, summarize the most essential information first.\n")
	prompt.WriteString("- Always respond in the same language as the question.\n")

	return prompt.String()
}
