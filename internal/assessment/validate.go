package assessment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// definitionSchema constrains the raw JSON shape of an externally authored
// assessment before it is decoded. Structural checks live here; the
// per-type answer-key rules live in Assessment.Validate.
const definitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["targetTopic", "questions"],
  "properties": {
    "targetTopic": {"type": "string", "minLength": 1},
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "correct_answer", "type", "topic_tested"],
        "properties": {
          "question": {"type": "string", "minLength": 1},
          "options": {"type": "array", "items": {"type": "string"}},
          "correct_answer": {
            "oneOf": [
              {"type": "string", "minLength": 1},
              {"type": "array", "items": {"type": "string"}, "minItems": 1}
            ]
          },
          "type": {"enum": ["single-correct-mcq", "multiple-correct-mcq", "true-false"]},
          "topic_tested": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// ParseDefinition validates and decodes a raw assessment definition.
func ParseDefinition(raw []byte) (Assessment, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(definitionSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return Assessment{}, fmt.Errorf("validating assessment definition: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return Assessment{}, fmt.Errorf("invalid assessment definition: %s", strings.Join(msgs, "; "))
	}

	var a Assessment
	if err := json.Unmarshal(raw, &a); err != nil {
		return Assessment{}, fmt.Errorf("decoding assessment definition: %w", err)
	}
	if err := a.Validate(); err != nil {
		return Assessment{}, err
	}
	return a, nil
}

// Validate checks that each question's answer key matches its declared
// type. This is the definition boundary: submissions may still arrive
// malformed, but keys never do once an assessment is accepted.
func (a Assessment) Validate() error {
	if a.TargetTopic == "" {
		return fmt.Errorf("assessment target topic is empty")
	}

	for i, q := range a.Questions {
		if !q.Type.Valid() {
			return fmt.Errorf("question %d: unsupported type %q", i, q.Type)
		}
		if q.TopicTested == "" {
			return fmt.Errorf("question %d: topic_tested is empty", i)
		}
		if q.CorrectAnswer.IsEmpty() {
			return fmt.Errorf("question %d: answer key is empty", i)
		}

		switch q.Type {
		case TypeSingleChoice:
			if q.CorrectAnswer.IsMultiple() && len(q.CorrectAnswer.Values()) != 1 {
				return fmt.Errorf("question %d: single-correct key must hold exactly one value", i)
			}
		case TypeMultipleChoice:
			if !q.CorrectAnswer.IsMultiple() {
				return fmt.Errorf("question %d: multiple-correct key must be an array", i)
			}
		case TypeTrueFalse:
			for _, v := range q.CorrectAnswer.Values() {
				if v != "True" && v != "False" {
					return fmt.Errorf("question %d: true-false key must be \"True\" or \"False\", got %q", i, v)
				}
			}
			if len(q.CorrectAnswer.Values()) != 1 {
				return fmt.Errorf("question %d: true-false key must hold exactly one value", i)
			}
		}
	}
	return nil
}
