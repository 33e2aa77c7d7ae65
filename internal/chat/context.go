package chat

import (
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// ContentPrefixRunes bounds the content of each link placed in the context.
const ContentPrefixRunes = 5000

// NotFoundAnswer is the sentence the assistant must use when the saved
// links do not cover the question.
const NotFoundAnswer = "Sorry, I can't find information about that in your saved links."

// BuildContext renders links as the numbered context block. The number of
// each entry is its index in links, which is what the assistant cites.
func BuildContext(links []*domain.Link) string {
	if len(links) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nContext from saved links:\n\n")
	for i, l := range links {
		b.WriteString("[")
		b.WriteString(strconv.Itoa(i))
		b.WriteString("] ")
		b.WriteString(l.DisplayTitle())
		b.WriteString("\nCategory: ")
		b.WriteString(string(l.Category))
		b.WriteString("\nContent: ")
		b.WriteString(domain.TruncateRunes(l.Content, ContentPrefixRunes))
		b.WriteString("...\n\n")
	}
	return b.String()
}

// SystemPrompt builds the grounding instruction for one turn.
func SystemPrompt(links []*domain.Link) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant that answers the user's questions based ONLY on the content of the links they have saved.\n")
	b.WriteString(BuildContext(links))
	b.WriteString("\nStrict instructions:\n")
	b.WriteString("1. Answer ONLY with the information given in the link context above.\n")
	b.WriteString("2. You can and MUST interpret the user's intent and connect related concepts (for example: if the user asks about \"link building\" and there is content about \"internal linking\", you MUST use that information).\n")
	b.WriteString("3. If the answer is not in the context, not even by association of concepts, say \"" + NotFoundAnswer + "\"\n")
	b.WriteString("4. Do not use your general knowledge to add outside facts that are not in the text.\n")
	b.WriteString("5. ALWAYS answer in JSON with this structure:\n")
	b.WriteString("{\n  \"answer\": \"Your answer here... (use markdown for formatting)\",\n  \"sources\": [0, 2]\n}\n")
	b.WriteString("where sources lists the indexes of the links you used. If you use no link, sources must be empty.")
	return b.String()
}
