package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("validation: schema invalid")
	ErrSchemaValidation = errors.New("validation: document does not match schema")
)

// ValidationIssue points at one offending location of a document.
type ValidationIssue struct {
	Location string
	Message  string
}

func (i ValidationIssue) String() string {
	location := strings.TrimSpace(i.Location)
	if location == "" {
		location = "#"
	} else if !strings.HasPrefix(location, "#") {
		location = "#" + location
	}
	if i.Message == "" {
		return location
	}
	return fmt.Sprintf("%s: %s", location, i.Message)
}

// PayloadValidationError lists every issue found in a rejected document.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts the leaf issues from err.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) && schemaErr != nil {
		return leafIssues(schemaErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("document.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("document.json")
}

func leafIssues(root *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	stack := []*jsonschema.ValidationError{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			continue
		}
		for i := len(node.Causes) - 1; i >= 0; i-- {
			stack = append(stack, node.Causes[i])
		}
	}
	return issues
}
