package openai

import "fmt"

// synthesisPromptTemplate is a stuff-style QA prompt: all retrieved context
// is stuffed into a single prompt together with the question.
const synthesisPromptTemplate = `Use the following pieces of context to answer the question at the end.
If you don't know the answer based on the context, just say that you don't know; don't try to make up an answer.

Context:
%s

Question: %s

Helpful Answer:`

// topicsPromptTemplate asks the model for topic labels as a bare JSON
// object so the response can be parsed without scraping prose.
const topicsPromptTemplate = `Extract the main topics from the given text and return them as JSON.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting,
or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this schema:

{"topics": ["topic one", "topic two"]}

Rules:
- Topics must be lowercase, 1-3 words each.
- Return at most %d topics, ordered from most to least central.
- Include only topics that are explicitly mentioned or clearly implied by the text. Do not hallucinate.
- If no topics can be identified, return "topics": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

func buildSynthesisPrompt(contextText, question string) string {
	return fmt.Sprintf(synthesisPromptTemplate, contextText, question)
}

func buildTopicsSystemPrompt(maxTopics int) string {
	return fmt.Sprintf(topicsPromptTemplate, maxTopics)
}
