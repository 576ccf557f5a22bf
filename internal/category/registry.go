package category

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type validatable interface{ validate() error }

// Factories produce fresh payload values for decode-then-validate.
// Categories absent from a map have no schema and accept any payload.
var dataFactories = map[Category]func() validatable{
	ImageClassification:    func() validatable { return &ImageClassificationData{} },
	TextClassification:     func() validatable { return &TextClassificationData{} },
	ObjectDetection:        func() validatable { return &ObjectDetectionData{} },
	NamedEntityRecognition: func() validatable { return &NERData{} },
	LLMResponseGrading:     func() validatable { return &LLMResponseGradingData{} },
	ChatbotAssessment:      func() validatable { return &ChatbotAssessmentData{} },
	ResponseSelection:      func() validatable { return &ResponseSelectionData{} },
}

var annotationFactories = map[Category]func() validatable{
	ImageClassification:    func() validatable { return &ImageClassificationAnnotation{} },
	TextClassification:     func() validatable { return &TextClassificationAnnotation{} },
	ObjectDetection:        func() validatable { return &ObjectDetectionAnnotation{} },
	NamedEntityRecognition: func() validatable { return &NERAnnotation{} },
	LLMResponseGrading:     func() validatable { return &LLMResponseGradingAnnotation{} },
	ChatbotAssessment:      func() validatable { return &ChatbotAssessmentAnnotation{} },
	ResponseSelection:      func() validatable { return &ResponseSelectionAnnotation{} },
}

// ValidateData validates task data against the category's schema. Used at
// task creation, where invalid data is rejected. Categories without a schema
// accept the payload as-is. The returned payload is normalized (re-encoded
// from the typed struct).
func ValidateData(cat Category, raw json.RawMessage) (json.RawMessage, error) {
	factory, ok := dataFactories[cat]
	if !ok {
		return raw, nil
	}
	v := factory()
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("invalid task data for category %s: %w", cat, err)
	}
	if err := v.validate(); err != nil {
		return nil, fmt.Errorf("invalid task data for category %s: %w", cat, err)
	}
	normalized, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize task data: %w", err)
	}
	return normalized, nil
}

// ValidateAnnotation validates an annotation against the category's schema.
// On success it returns the normalized payload and true. On mismatch it
// returns the original payload and false: the caller stores it raw so
// annotators are never blocked by a schema mismatch.
func ValidateAnnotation(cat Category, raw json.RawMessage) (json.RawMessage, bool) {
	factory, ok := annotationFactories[cat]
	if !ok {
		return raw, true
	}
	candidate := raw
	if cat == LLMResponseGrading {
		candidate = coerceGradingFields(raw)
	}
	v := factory()
	if err := json.Unmarshal(candidate, v); err != nil {
		return raw, false
	}
	if err := v.validate(); err != nil {
		return raw, false
	}
	normalized, err := json.Marshal(v)
	if err != nil {
		return raw, false
	}
	return normalized, true
}

// coerceGradingFields maps common lightweight grading payloads onto the
// rating field: {"score": 4}, {"value": "4"} and {"label": "good"} are all
// accepted in the wild.
func coerceGradingFields(raw json.RawMessage) json.RawMessage {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return raw
	}
	if _, ok := fields["rating"]; ok {
		return raw
	}
	if r, ok := toRating(fields["score"]); ok {
		fields["rating"] = r
	} else if r, ok := toRating(fields["value"]); ok {
		fields["rating"] = r
	} else if label, ok := fields["label"].(string); ok {
		if r, ok := labelToRating(label); ok {
			fields["rating"] = r
		}
	}
	coerced, err := json.Marshal(fields)
	if err != nil {
		return raw
	}
	return coerced
}

func toRating(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

var ratingLabels = map[string]int{
	"excellent": 5,
	"great":     5,
	"good":      4,
	"average":   3,
	"ok":        3,
	"poor":      2,
	"bad":       1,
}

func labelToRating(label string) (int, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(label); err == nil {
		return i, true
	}
	r, ok := ratingLabels[label]
	return r, ok
}
