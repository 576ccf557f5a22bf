// Package category defines the closed set of labeling task categories and
// the payload contracts for each. The registry validates task data strictly
// at creation time and annotations leniently at submission time: an
// annotation that does not match its category's shape is stored raw rather
// than rejected, so annotators are never blocked by a schema mismatch.
package category

import "fmt"

// Category identifies the labeling task type.
type Category string

const (
	ImageClassification    Category = "image_classification"
	TextClassification     Category = "text_classification"
	ObjectDetection        Category = "object_detection"
	NamedEntityRecognition Category = "named_entity_recognition"
	SentimentAnalysis      Category = "sentiment_analysis"
	LLMResponseGrading     Category = "generative_ai_llm_response_grading"
	ChatbotAssessment      Category = "generative_ai_chatbot_assessment"
	ResponseSelection      Category = "conversational_ai_response_selection"
	TextSummarization      Category = "text_summarization"
	QaEvaluation           Category = "qa_evaluation"
)

// All returns every known category.
func All() []Category {
	return []Category{
		ImageClassification,
		TextClassification,
		ObjectDetection,
		NamedEntityRecognition,
		SentimentAnalysis,
		LLMResponseGrading,
		ChatbotAssessment,
		ResponseSelection,
		TextSummarization,
		QaEvaluation,
	}
}

// Parse converts a string into a Category.
func Parse(s string) (Category, error) {
	for _, c := range All() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown task category %q", s)
}
