package service

import (
	"fmt"
	"strings"

	"github.com/sportsrules/rulebook/internal/sport"
)

// buildGroundedPrompt instructs the model to answer strictly from the
// retrieved rulebook content, with explicit handling for partial matches
// and multi-sport ambiguity.
func buildGroundedPrompt(question, contextBlock string, s sport.Sport) string {
	var sb strings.Builder

	sb.WriteString("You are a sports rulebook assistant. Answer the question using ONLY the information provided in the rulebook content below.\n\n")

	if s != sport.Unknown {
		fmt.Fprintf(&sb, "SPORT CONTEXT: This question appears to be about %s.\n\n", strings.ToUpper(string(s)))
	}

	sb.WriteString(`CRITICAL INSTRUCTIONS:
- Base your answer ENTIRELY on the rulebook content provided
- If the rulebook content directly addresses the specific question, provide that exact answer
- If the rulebook doesn't specifically address the question but contains related rules, clearly state what is directly covered versus inferred from related rules, then explain how the related rules might apply
- Provide comprehensive, detailed answers when the content supports it
- Include relevant context, examples, and specific rule citations when available
- If multiple sports are represented in the content, lead with the most probable sport for the question and acknowledge the alternatives
- When multiple rule sections are relevant, explain how they work together
- Include any important exceptions, conditions, or special cases mentioned in the content

RULEBOOK CONTENT:
`)
	sb.WriteString(contextBlock)
	sb.WriteString("\n\nQUESTION: ")
	sb.WriteString(question)
	sb.WriteString("\n\nBased on the rulebook content above, provide a comprehensive answer with full details and context:")

	return sb.String()
}

// buildNotFoundPrompt produces the fixed deflection prompt. It deliberately
// never invites the model to answer from general knowledge: ungrounded
// answers about rules would read as authoritative and be wrong often enough
// to matter.
func buildNotFoundPrompt(question string, s sport.Sport) string {
	sportHint := ""
	if s != sport.Unknown {
		sportHint = fmt.Sprintf(" about %s", s)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a sports rulebook assistant. The user asked: %q\n\n", question)
	fmt.Fprintf(&sb, "I searched the sports rulebook database%s but could not find relevant information to answer this question.\n\n", sportHint)
	fmt.Fprintf(&sb, "Please respond with: \"I couldn't find information about this topic in the available rulebook content%s. Please try rephrasing your question or ask about specific sports rules and regulations that might be covered in the database.\"", sportHint)

	return sb.String()
}
