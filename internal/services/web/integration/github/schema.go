package github

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const reposSchemaURL = "urn:portfolio:github:repos"

// reposSchema pins the subset of the GitHub repos payload the site reads.
const reposSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "html_url", "stargazers_count", "updated_at"],
    "properties": {
      "id": {"type": "integer", "minimum": 0},
      "name": {"type": "string", "minLength": 1},
      "description": {"type": ["string", "null"]},
      "html_url": {"type": "string", "minLength": 1},
      "homepage": {"type": ["string", "null"]},
      "stargazers_count": {"type": "integer", "minimum": 0},
      "language": {"type": ["string", "null"]},
      "topics": {"type": "array", "items": {"type": "string"}},
      "created_at": {"type": "string"},
      "updated_at": {"type": "string", "minLength": 1},
      "fork": {"type": "boolean"},
      "private": {"type": "boolean"}
    }
  }
}`

func compileReposSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(reposSchema))
	if err != nil {
		return nil, fmt.Errorf("decode repos schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(reposSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add repos schema: %w", err)
	}
	schema, err := compiler.Compile(reposSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile repos schema: %w", err)
	}
	return schema, nil
}
