package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema defines the JSON structure expected from the model. A Schema is
// compiled on first use and must not be copied after that.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "resume-feedback".
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any

	// Strict asks providers that support it to enforce the schema during
	// decoding. Strict schemas must list every property as required.
	Strict bool

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Check reports whether raw is JSON conforming to s. A nil Schema accepts
// anything. Failures are *FeedbackError.
func (s *Schema) Check(raw json.RawMessage) error {
	if s == nil {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &FeedbackError{Schema: s.Name, Content: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}

	s.once.Do(s.compile)
	if s.err != nil {
		return &FeedbackError{Schema: s.Name, Content: raw, Err: s.err}
	}
	if err := s.compiled.Validate(doc); err != nil {
		return &FeedbackError{Schema: s.Name, Content: raw, Err: err}
	}
	return nil
}

func (s *Schema) compile() {
	// The compiler wants the decoded JSON form, not Go maps with int values.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		s.err = fmt.Errorf("encode schema %q: %w", s.Name, err)
		return
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		s.err = fmt.Errorf("decode schema %q: %w", s.Name, err)
		return
	}

	url := "mem://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		s.err = fmt.Errorf("load schema %q: %w", s.Name, err)
		return
	}
	s.compiled, s.err = c.Compile(url)
}

// validated checks content against the request schema and assembles the
// Response every adapter returns.
func validated(req Request, content json.RawMessage, model string, truncated bool, u Usage) (*Response, error) {
	if truncated && req.Schema != nil {
		return nil, &FeedbackError{Schema: req.Schema.Name, Content: content, Err: ErrTruncated}
	}
	if err := req.Schema.Check(content); err != nil {
		return nil, err
	}

	stop := "end"
	if truncated {
		stop = "max_tokens"
	}
	if u.TotalTokens == 0 {
		u.TotalTokens = u.InputTokens + u.OutputTokens
	}
	return &Response{Content: content, Usage: u, Model: model, StopReason: stop}, nil
}
