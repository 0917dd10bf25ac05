package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// validators holds compiled schemas by Schema.Name.
var validators struct {
	mu    sync.Mutex
	byKey map[string]*jsonschema.Schema
}

func compileSchema(s *Schema) (*jsonschema.Schema, error) {
	validators.mu.Lock()
	defer validators.mu.Unlock()

	if v, ok := validators.byKey[s.Name]; ok {
		return v, nil
	}

	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", s.Name, err)
	}

	url := "schema://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", s.Name, err)
	}
	v, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", s.Name, err)
	}

	if validators.byKey == nil {
		validators.byKey = make(map[string]*jsonschema.Schema)
	}
	validators.byKey[s.Name] = v
	return v, nil
}

// validateReply checks raw against s. A nil schema accepts anything.
func validateReply(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return invalidResponse(raw, errors.New("empty reply"))
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalidResponse(raw, fmt.Errorf("reply is not JSON: %w", err))
	}
	v, err := compileSchema(s)
	if err != nil {
		return invalidResponse(raw, err)
	}
	if err := v.Validate(doc); err != nil {
		return invalidResponse(raw, err)
	}
	return nil
}

// finishReply validates a provider reply and builds the Response. A reply
// cut off at the token limit that fails validation is reported as
// KindTruncated so it is not retried.
func finishReply(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if err := validateReply(req.Schema, content); err != nil {
		if stop == stopMaxTokens {
			return nil, &Error{Kind: KindTruncated, Content: content, Err: err}
		}
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
