package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/params"
)

const jsonSchemaDraft = "http://json-schema.org/draft-04/schema#"

// DeploySchema is the JSON schema of the toolchain deploy form.
type DeploySchema struct {
	Schema          string                    `json:"$schema"`
	Title           string                    `json:"title"`
	Description     string                    `json:"description"`
	LongDescription string                    `json:"longDescription"`
	Type            string                    `json:"type"`
	Properties      map[string]SchemaProperty `json:"properties"`
	Required        []string                  `json:"required"`
	Form            []FormField               `json:"form"`
}

// SchemaProperty is one property of the deploy form schema.
type SchemaProperty struct {
	Description string `json:"description"`
	Type        string `json:"type"`
	Pattern     string `json:"pattern,omitempty"`
}

// FormField renders one schema property in the deploy form.
type FormField struct {
	Type     string `json:"type"`
	Readonly bool   `json:"readonly"`
	Title    string `json:"title"`
	Key      string `json:"key"`
}

// buildDeploySchema renders .bluemix/deploy.json from the deploy fields of
// the parameter set.
func buildDeploySchema(a *Assembler) ([]byte, error) {
	b := &binder{set: a.params}
	app := b.text(params.AppName)
	if b.err != nil {
		return nil, b.err
	}

	fields := a.params.DeployFields()
	schema := DeploySchema{
		Schema:          jsonSchemaDraft,
		Title:           "Kubernetes Deploy Stage",
		Description:     fmt.Sprintf("Deploy %s to a Kubernetes cluster", app),
		LongDescription: "The deploy stage builds the application image, pushes it to the container registry and rolls out its Helm chart to the selected cluster.",
		Type:            "object",
		Properties:      make(map[string]SchemaProperty, len(fields)),
		Required:        make([]string, 0, len(fields)),
		Form:            make([]FormField, 0, len(fields)),
	}

	for _, f := range fields {
		schema.Properties[f.Key] = SchemaProperty{
			Description: f.Description,
			Type:        "string",
			Pattern:     "\\S",
		}
		schema.Required = append(schema.Required, f.Key)

		formType := "text"
		if f.Secure {
			formType = "password"
		}
		schema.Form = append(schema.Form, FormField{
			Type:  formType,
			Title: f.Title,
			Key:   f.Key,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(schema); err != nil {
		return nil, fmt.Errorf("failed to encode deploy schema: %w", err)
	}
	return buf.Bytes(), nil
}
