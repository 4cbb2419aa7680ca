/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateProcessor defines the interface for rendering component templates
type TemplateProcessor interface {
	Process(templateContent string, variables map[string]interface{}) (string, error)
}

// CfnTemplateProcessor implements TemplateProcessor using Go's text/template with Sprig functions
type CfnTemplateProcessor struct{}

// NewCfnTemplateProcessor creates a new CloudFormation template processor
func NewCfnTemplateProcessor() *CfnTemplateProcessor {
	return &CfnTemplateProcessor{}
}

// Process renders the template with sprig functions. Referencing a variable that was not
// supplied is an error.
func (tp *CfnTemplateProcessor) Process(templateContent string, variables map[string]interface{}) (string, error) {
	tmpl, err := template.New("cloudformation").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// TemplateVariables builds the variable set exposed to component templates
func TemplateVariables(identifier, environment, component, stackName string, parameters map[string]string) map[string]interface{} {
	params := make(map[string]interface{}, len(parameters))
	for k, v := range parameters {
		params[k] = v
	}

	return map[string]interface{}{
		"Identifier":  identifier,
		"Environment": environment,
		"Component":   component,
		"StackName":   stackName,
		"Parameters":  params,
	}
}
