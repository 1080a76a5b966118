package gemini

import (
	"fmt"
	"strings"

	"github.com/fwojciec/darkcrawl"
	"google.golang.org/genai"
)

// maxDocumentContext caps the condensed document snippet included in the
// prompt. Anything past this is unlikely to describe visible UI and inflates
// token cost.
const maxDocumentContext = 6000

const systemInstruction = `You are an expert auditor of deceptive user interface patterns, also known as dark patterns. You are given a full-page screenshot of a web page and a condensed text rendering of its document. Identify every deceptive pattern visible on the page.

Report only patterns you can see evidence for. Do not speculate about behavior that would require interacting with the page.`

// BuildConfig returns the generation config used for every inference call.
func BuildConfig() *genai.GenerateContentConfig {
	temperature := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt assembles the sectioned user prompt: task instruction,
// the pattern taxonomy, page metadata, and the condensed document snippet.
func BuildUserPrompt(page *darkcrawl.CapturedPage, documentContext string) string {
	var b strings.Builder

	b.WriteString("# Task\n")
	b.WriteString("Analyze the attached screenshot for deceptive UI patterns. ")
	b.WriteString("For each pattern found, report its type, a short description, a severity level ")
	b.WriteString("(low, medium, high, or critical), where on the page it appears, the visible text ")
	b.WriteString("that constitutes the evidence, your confidence between 0 and 1, and when you can ")
	b.WriteString("localize it precisely, a bounding box [x, y, width, height] in screenshot pixels.\n\n")

	b.WriteString("# Pattern taxonomy\n")
	for _, t := range darkcrawl.KnownPatternTypes() {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	b.WriteString("\n")

	b.WriteString("# Page\n")
	fmt.Fprintf(&b, "URL: %s\n", page.Address)
	fmt.Fprintf(&b, "Viewport: %dx%d\n\n", page.Viewport.Width, page.Viewport.Height)

	if snippet := truncate(documentContext, maxDocumentContext); snippet != "" {
		b.WriteString("# Document\n")
		b.WriteString(snippet)
		b.WriteString("\n\n")
	}

	b.WriteString("# Output\n")
	b.WriteString(`Respond with a single JSON object of the form {"patterns": [...], "summary": "..."}. `)
	b.WriteString(`Each element of "patterns" has the fields "type", "description", "severity", `)
	b.WriteString(`"location_hint", "evidence", "confidence", and optionally "bbox". `)
	b.WriteString(`If the page shows no deceptive patterns, return {"patterns": []}.`)

	return b.String()
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
