package category

import (
	"encoding/json"
	"fmt"
)

// Document accepts either a single string or an array of paragraphs.
type Document []string

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*d = Document{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("document must be a string or array of strings")
	}
	*d = Document(many)
	return nil
}

// DialogueMessage is a single message in a dialogue.
type DialogueMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Task data payloads per category.

type ImageClassificationData struct {
	ImageURL string   `json:"image_url"`
	Labels   []string `json:"labels"`
}

func (d ImageClassificationData) validate() error {
	if d.ImageURL == "" {
		return fmt.Errorf("image_url is required")
	}
	if len(d.Labels) == 0 {
		return fmt.Errorf("labels must not be empty")
	}
	return nil
}

type TextClassificationData struct {
	Text   string   `json:"text"`
	Labels []string `json:"labels"`
}

func (d TextClassificationData) validate() error {
	if d.Text == "" {
		return fmt.Errorf("text is required")
	}
	if len(d.Labels) == 0 {
		return fmt.Errorf("labels must not be empty")
	}
	return nil
}

type ObjectDetectionData struct {
	ImageURL string   `json:"image_url"`
	Classes  []string `json:"classes"`
}

func (d ObjectDetectionData) validate() error {
	if d.ImageURL == "" {
		return fmt.Errorf("image_url is required")
	}
	if len(d.Classes) == 0 {
		return fmt.Errorf("classes must not be empty")
	}
	return nil
}

type NERData struct {
	Text        string   `json:"text"`
	EntityTypes []string `json:"entity_types"`
}

func (d NERData) validate() error {
	if d.Text == "" {
		return fmt.Errorf("text is required")
	}
	if len(d.EntityTypes) == 0 {
		return fmt.Errorf("entity_types must not be empty")
	}
	return nil
}

type LLMResponseGradingData struct {
	Document  Document `json:"document"`
	Summary   string   `json:"summary"`
	Prompt    string   `json:"prompt,omitempty"`
	ModelName string   `json:"model_name,omitempty"`
}

func (d LLMResponseGradingData) validate() error {
	if len(d.Document) == 0 {
		return fmt.Errorf("document is required")
	}
	if d.Summary == "" {
		return fmt.Errorf("summary is required")
	}
	return nil
}

type ChatbotAssessmentData struct {
	Messages        []DialogueMessage `json:"messages"`
	ModelName       string            `json:"model_name,omitempty"`
	AssessmentTitle string            `json:"assessment_title,omitempty"`
}

func (d ChatbotAssessmentData) validate() error {
	if len(d.Messages) == 0 {
		return fmt.Errorf("messages must not be empty")
	}
	return nil
}

type ResponseSelectionData struct {
	Dialogue        []DialogueMessage `json:"dialogue"`
	ResponseOptions []string          `json:"response_options"`
	Context         string            `json:"context,omitempty"`
}

func (d ResponseSelectionData) validate() error {
	if len(d.Dialogue) == 0 {
		return fmt.Errorf("dialogue must not be empty")
	}
	if len(d.ResponseOptions) == 0 {
		return fmt.Errorf("response_options must not be empty")
	}
	return nil
}

// Annotation payloads per category.

type ImageClassificationAnnotation struct {
	SelectedLabel string `json:"selected_label"`
	Confidence    *int   `json:"confidence,omitempty"` // 1-5
}

func (a ImageClassificationAnnotation) validate() error {
	if a.SelectedLabel == "" {
		return fmt.Errorf("selected_label is required")
	}
	return checkRange(a.Confidence, "confidence", 1, 5)
}

type TextClassificationAnnotation struct {
	SelectedLabel string `json:"selected_label"`
	Confidence    *int   `json:"confidence,omitempty"` // 1-5
}

func (a TextClassificationAnnotation) validate() error {
	if a.SelectedLabel == "" {
		return fmt.Errorf("selected_label is required")
	}
	return checkRange(a.Confidence, "confidence", 1, 5)
}

type ObjectDetectionAnnotation struct {
	Objects []map[string]any `json:"objects"`
}

func (a ObjectDetectionAnnotation) validate() error {
	if a.Objects == nil {
		return fmt.Errorf("objects is required")
	}
	return nil
}

type NERAnnotation struct {
	Entities []map[string]any `json:"entities"`
}

func (a NERAnnotation) validate() error {
	if a.Entities == nil {
		return fmt.Errorf("entities is required")
	}
	return nil
}

type LLMResponseGradingAnnotation struct {
	Rating         int            `json:"rating"` // 1-5
	Feedback       string         `json:"feedback,omitempty"`
	CriteriaScores map[string]int `json:"criteria_scores,omitempty"`
}

func (a LLMResponseGradingAnnotation) validate() error {
	if a.Rating < 1 || a.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

type ChatbotAssessmentAnnotation struct {
	LikertScale               int    `json:"likert_scale"` // 1-7
	FailsToFollow             bool   `json:"fails_to_follow"`
	InappropriateForCustomer  bool   `json:"inappropriate_for_customer"`
	Hallucination             bool   `json:"hallucination"`
	SatisfiesConstraint       bool   `json:"satisfies_constraint"`
	ContainsSexual            bool   `json:"contains_sexual"`
	ContainsViolent           bool   `json:"contains_violent"`
	EncouragesViolence        bool   `json:"encourages_violence"`
	DenigratesProtectedClass  bool   `json:"denigrates_protected_class"`
	GivesHarmfulAdvice        bool   `json:"gives_harmful_advice"`
	ExpressesOpinion          bool   `json:"expresses_opinion"`
	ExpressesMoralJudgment    bool   `json:"expresses_moral_judgment"`
	AdditionalNotes           string `json:"additional_notes,omitempty"`
}

func (a ChatbotAssessmentAnnotation) validate() error {
	if a.LikertScale < 1 || a.LikertScale > 7 {
		return fmt.Errorf("likert_scale must be between 1 and 7")
	}
	return nil
}

type ResponseSelectionAnnotation struct {
	SelectedResponse int    `json:"selected_response"` // 1-3
	Confidence       *int   `json:"confidence,omitempty"`
	Reasoning        string `json:"reasoning,omitempty"`
}

func (a ResponseSelectionAnnotation) validate() error {
	if a.SelectedResponse < 1 || a.SelectedResponse > 3 {
		return fmt.Errorf("selected_response must be 1, 2 or 3")
	}
	return checkRange(a.Confidence, "confidence", 1, 5)
}

func checkRange(v *int, name string, lo, hi int) error {
	if v == nil {
		return nil
	}
	if *v < lo || *v > hi {
		return fmt.Errorf("%s must be between %d and %d", name, lo, hi)
	}
	return nil
}
