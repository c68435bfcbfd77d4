package scanning

import "strings"

// transcribePrompt is the shared prompt used by all LLM providers for OCR
const transcribePrompt = `You are an OCR engine. Transcribe every piece of text visible in this product image exactly as printed.

Rules:
- Output one line of text per printed line, top to bottom, left to right
- Keep numbers, units and separators exactly as shown (for example "100x150mm" or "4.5 x 6.2 in")
- Do not translate, summarize, correct or explain anything
- Do not add any text before or after the transcription
- Do not use markdown code blocks`

// cleanTranscript strips the markdown fences some models wrap around their output
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Drop the opening fence line (``` or ```text) and the closing fence
	if idx := strings.Index(text, "\n"); idx != -1 {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
