package gemini

import (
	"context"
	"fmt"
	"strings"

	"docanvas/i18n"
	"docanvas/ingest"
)

// canvasSystemInstruction constrains canvas responses to pure Markdown.
const canvasSystemInstruction = `You are a data analysis assistant. Your task is to process the user's request based on the provided document content and generate a response formatted exclusively in Markdown. Do not include any conversational text, greetings, or explanations outside of the Markdown structure. If the user asks for a table, provide only the Markdown table. If they ask for a summary, provide a well-structured summary in Markdown.`

// Chat answers a free-form question about the uploaded files in the
// requested language. Image files become inline binary parts; text files
// are concatenated into one delimited context block.
func (c *Client) Chat(ctx context.Context, files []ingest.FileData, query string, lang i18n.Language) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("at least one file is required")
	}

	parts := buildFileParts(files)

	var prompt strings.Builder
	prompt.WriteString(i18n.Instruction(lang))
	prompt.WriteString("\n\n")
	if textContext := buildTextContext(files); textContext != "" {
		prompt.WriteString(textContext)
		prompt.WriteString("\n\n")
	}
	fmt.Fprintf(&prompt, "Based on this, please answer the following user query: %q", query)
	parts = append(parts, &Part{Text: prompt.String()})

	resp, err := c.generateContent(ctx, &GenerateContentRequest{
		Contents: []*Content{{Role: "user", Parts: parts}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get response from AI model: %w", err)
	}
	return responseText(resp)
}

// Canvas answers a request with Markdown only, for wholesale replacement of
// the canvas document.
func (c *Client) Canvas(ctx context.Context, files []ingest.FileData, query string, lang i18n.Language) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("at least one file is required")
	}

	parts := buildFileParts(files)

	var prompt strings.Builder
	if textContext := buildTextContext(files); textContext != "" {
		prompt.WriteString(textContext)
		prompt.WriteString("\n\n")
	}
	fmt.Fprintf(&prompt, "User Request: %q", query)
	parts = append(parts, &Part{Text: prompt.String()})

	system := canvasSystemInstruction + " " + i18n.Instruction(lang)

	resp, err := c.generateContent(ctx, &GenerateContentRequest{
		Contents:          []*Content{{Role: "user", Parts: parts}},
		SystemInstruction: &Content{Parts: []*Part{{Text: system}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get structured response from AI model: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return stripCodeFence(text), nil
}

// Translate converts text between languages, returning the translated text
// only.
func (c *Client) Translate(ctx context.Context, text string, source, target i18n.Language) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("nothing to translate")
	}

	system := fmt.Sprintf(
		"You are a translator. Translate the user's text from %s to %s. Respond with the translated text only, without commentary, quotes, or extra formatting.",
		i18n.EnglishName(source), i18n.EnglishName(target))

	resp, err := c.generateContent(ctx, &GenerateContentRequest{
		Contents:          []*Content{{Role: "user", Parts: []*Part{{Text: text}}}},
		SystemInstruction: &Content{Parts: []*Part{{Text: system}}},
	})
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	return responseText(resp)
}

// buildFileParts returns one inline-data part per uploaded image.
func buildFileParts(files []ingest.FileData) []*Part {
	parts := make([]*Part, 0, len(files)+1)
	for _, f := range files {
		if !f.IsImage {
			continue
		}
		parts = append(parts, &Part{
			InlineData: &InlineData{
				MIMEType: f.MIMEType,
				Data:     f.Content,
			},
		})
	}
	return parts
}

// buildTextContext concatenates document contents into a single context
// block. Documents are delimited by horizontal-rule markers and titled with
// their filenames so the model can attribute content per file.
func buildTextContext(files []ingest.FileData) string {
	var sb strings.Builder
	for _, f := range files {
		if f.IsImage {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&sb, "Document: %s\n\n%s", f.Name, f.Content)
	}
	if sb.Len() == 0 {
		return ""
	}
	return "Here is the content of the uploaded document(s):\n\n" + sb.String()
}

// stripCodeFence removes a wrapping markdown code fence if the model added
// one despite the system instruction.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```markdown")
	trimmed = strings.TrimPrefix(trimmed, "```md")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
