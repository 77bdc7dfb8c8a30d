package pitch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// feedbackSchema constrains the model's JSON output. Metadata fields
// (analysis_id, timestamp, processing_time, content_statistics) are attached
// locally after decoding, so the schema does not require them.
const feedbackSchema = `{
  "type": "object",
  "required": [
    "problem", "solution", "market_size", "business_model",
    "go_to_market_strategy", "traction", "team", "competitive_advantage",
    "vision", "scores", "investor_questions", "overall_impression"
  ],
  "properties": {
    "problem": {"$ref": "#/$defs/section"},
    "solution": {"$ref": "#/$defs/section"},
    "market_size": {"$ref": "#/$defs/section"},
    "business_model": {"$ref": "#/$defs/section"},
    "go_to_market_strategy": {"$ref": "#/$defs/section"},
    "traction": {"$ref": "#/$defs/section"},
    "team": {"$ref": "#/$defs/section"},
    "competitive_advantage": {"$ref": "#/$defs/section"},
    "vision": {"$ref": "#/$defs/section"},
    "scores": {
      "type": "object",
      "additionalProperties": {"type": "integer", "minimum": 0, "maximum": 100}
    },
    "investor_questions": {
      "type": "array",
      "items": {"type": "string"}
    },
    "overall_impression": {"type": "string"},
    "risk_factors": {
      "type": "array",
      "items": {"type": "string"}
    },
    "strengths": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "$defs": {
    "section": {
      "type": "object",
      "required": ["summary", "feedback"],
      "properties": {
        "summary": {"type": "string"},
        "feedback": {"type": "string"},
        "score": {"type": ["integer", "null"], "minimum": 0, "maximum": 100}
      }
    }
  }
}`

// compiledSchema is built once at startup; the schema is a constant, so a
// compile failure is a programming error.
var compiledSchema = jsonschema.MustCompileString("feedback.json", feedbackSchema)

// FormatInstructions returns the output-format section appended to every
// analysis prompt.
func FormatInstructions() string {
	var b strings.Builder
	b.WriteString("The output must be a single JSON object conforming to the schema below.\n")
	b.WriteString("Do not include any prose outside the JSON object.\n\n")
	b.WriteString(feedbackSchema)
	return b.String()
}

// DecodeFeedback validates raw model output against the feedback schema and
// decodes it. Markdown code fences around the JSON are tolerated.
func DecodeFeedback(raw string) (Feedback, error) {
	cleaned := stripCodeFences(raw)

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return Feedback{}, fmt.Errorf("parse model output: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return Feedback{}, fmt.Errorf("model output does not match feedback schema: %w", err)
	}

	var fb Feedback
	if err := json.Unmarshal([]byte(cleaned), &fb); err != nil {
		return Feedback{}, fmt.Errorf("decode feedback: %w", err)
	}
	return fb, nil
}

// stripCodeFences removes a surrounding ```json ... ``` block if present.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
