// Package prompt assembles the structured prompt sent to the generation
// backend: grounding instructions, retrieved knowledge, conversation history,
// and the visitor's question.
package prompt

import (
	"fmt"
	"strings"

	"tribe-chatbot-be/pkg/llm"
)

// RefusalPhrase is the fixed reply for factual questions the knowledge base
// does not cover. The system prompt instructs the model to use it verbatim.
const RefusalPhrase = "I don't have information about that."

const noKnowledgeContext = "No knowledge base found for this chatbot."

// ContextChunk is one retrieved knowledge chunk and the document or URL it
// came from.
type ContextChunk struct {
	Text   string
	Source string
}

// Builder assembles the message set for one query.
type Builder struct {
	chunks   []ContextChunk
	history  []llm.Message
	question string
}

func NewBuilder(chunks []ContextChunk, history []llm.Message, question string) *Builder {
	return &Builder{
		chunks:   chunks,
		history:  history,
		question: question,
	}
}

// Build produces the full message set: system instructions plus a single user
// message carrying context, history, and the question. An empty retrieval
// result still builds a valid prompt; the system instructions handle the
// "no knowledge" reply, so the call never hard-fails on missing context.
func (b *Builder) Build() []llm.Message {
	return []llm.Message{
		{Role: "system", Content: b.systemInstructions()},
		{Role: "user", Content: b.userContent()},
	}
}

func (b *Builder) systemInstructions() string {
	var sb strings.Builder
	sb.WriteString("You are a helpful company assistant.\n")
	sb.WriteString("Use the provided knowledge-base context when answering factual questions.\n")
	sb.WriteString("If the user's message is conversational (like 'ok', 'thanks', 'yes', 'continue', etc.), ")
	sb.WriteString("respond naturally without requiring context.\n")
	sb.WriteString("If the user asks a factual question and the answer is NOT found in the knowledge context, reply:\n")
	sb.WriteString("'" + RefusalPhrase + "'\n")
	sb.WriteString("Never invent facts.\n")
	sb.WriteString("Keep responses clear, concise, friendly, and conversational.")
	return sb.String()
}

func (b *Builder) userContent() string {
	var sb strings.Builder
	sb.WriteString("Knowledge Base Context:\n")
	b.writeContext(&sb)
	sb.WriteString("\n\nConversation History:\n")
	b.writeHistory(&sb)
	sb.WriteString("\n\nUser question: ")
	sb.WriteString(b.question)
	return sb.String()
}

func (b *Builder) writeContext(sb *strings.Builder) {
	if len(b.chunks) == 0 {
		sb.WriteString(noKnowledgeContext)
		return
	}
	for i, chunk := range b.chunks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("[Source: %s]\n", chunk.Source))
		sb.WriteString(chunk.Text)
	}
}

func (b *Builder) writeHistory(sb *strings.Builder) {
	if len(b.history) == 0 {
		sb.WriteString("No previous messages.")
		return
	}
	for i, msg := range b.history {
		if i > 0 {
			sb.WriteString("\n")
		}
		label := "User"
		if msg.Role != "user" {
			label = "Bot"
		}
		sb.WriteString(label + ": " + msg.Content)
	}
}
