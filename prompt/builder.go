// Package prompt composes the system instructions sent to the vendor.
package prompt

import (
	"fmt"
	"strings"

	"github.com/harshgoy877/travdif-bot-backend/domain"
	"github.com/harshgoy877/travdif-bot-backend/knowledge"
)

// ProductName identifies the assistant in both prompt templates.
const ProductName = "Travdif"

// domainKeywords route a query to the knowledge-grounded template when any
// of them appears as a case-insensitive substring.
var domainKeywords = []string{
	"travdif",
	"travel",
	"trip",
	"tour",
	"package",
	"price",
	"cost",
	"booking",
	"book",
	"contact",
	"visa",
	"flight",
	"hotel",
	"destination",
}

// Builder builds system prompts from the persona rules and the knowledge blob.
type Builder struct {
	knowledge      *knowledge.Store
	supportContact string
}

// NewBuilder creates a prompt builder backed by the given knowledge store.
func NewBuilder(kn *knowledge.Store, supportContact string) *Builder {
	return &Builder{knowledge: kn, supportContact: supportContact}
}

// IsDomainQuery reports whether the query matches any domain keyword.
func IsDomainQuery(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range domainKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// SystemPrompt returns the instruction string for the given user query:
// the knowledge-grounded template for domain queries, the general persona
// template otherwise.
func (b *Builder) SystemPrompt(query string) string {
	if IsDomainQuery(query) {
		return b.domainPrompt()
	}
	return b.generalPrompt()
}

func (b *Builder) domainPrompt() string {
	return fmt.Sprintf(`You are the %s travel assistant on the %s website.
Answer using ONLY the business information below. Be friendly and concise.
If the answer is not covered by the information, say so and point the visitor
to %s instead of guessing.

Business information:
%s

Formatting rules:
- Short paragraphs, no markdown headings.
- Never invent prices; quote ranges only when the information states them.`,
		ProductName, ProductName, b.supportContact, b.knowledge.Text())
}

func (b *Builder) generalPrompt() string {
	return fmt.Sprintf(`You are the %s assistant, a friendly helper on the %s
travel website. Answer general questions briefly and helpfully. Always
identify yourself as the %s assistant when asked who you are. For anything
about bookings, pricing, or %s services, invite the visitor to ask directly
or to reach out to %s.`,
		ProductName, ProductName, ProductName, ProductName, b.supportContact)
}

// WithSystem returns the message list with the system prompt for the query
// installed at index 0, replacing an existing system entry or prepending one.
func (b *Builder) WithSystem(messages []domain.ChatMessage, query string) []domain.ChatMessage {
	system := domain.ChatMessage{Role: domain.RoleSystem, Content: b.SystemPrompt(query)}
	if len(messages) > 0 && messages[0].Role == domain.RoleSystem {
		out := make([]domain.ChatMessage, len(messages))
		copy(out, messages)
		out[0] = system
		return out
	}
	out := make([]domain.ChatMessage, 0, len(messages)+1)
	out = append(out, system)
	out = append(out, messages...)
	return out
}
