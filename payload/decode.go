/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"gopkg.in/yaml.v3"

	"github.com/suparena/primed/errors"
)

// FromJSON decodes a JSON object into a Payload. A JSON null yields a nil Payload.
// Numbers are kept as json.Number so large integers and decimals reach
// transformers without passing through float64.
func FromJSON(data []byte) (Payload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] != '{' {
		return nil, errors.NewValidationError("", "JSON payload must be an object")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON object", errors.ErrInvalidInput)
	}
	return p, nil
}

// FromYAML decodes a YAML mapping into a Payload. An empty document yields a nil Payload.
func FromYAML(data []byte) (Payload, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return nil, nil
	}

	doc := node.Content[0]
	if doc.Tag == "!!null" {
		return nil, nil
	}
	if doc.Kind != yaml.MappingNode {
		return nil, errors.NewValidationError("", "YAML payload must be a mapping")
	}

	var p Payload
	if err := doc.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	return p, nil
}

// FromItem converts a DynamoDB item into a Payload. Numbers become float64,
// lists become []any and maps become map[string]any.
func FromItem(item map[string]types.AttributeValue) (Payload, error) {
	if item == nil {
		return nil, nil
	}

	var m map[string]any
	if err := attributevalue.UnmarshalMap(item, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return Payload(m), nil
}
