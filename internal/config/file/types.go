/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package file contains the raw YAML structure of stackpreview.yaml before defaults
// and overrides are applied.
package file

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the raw YAML configuration file structure
type Config struct {
	Prefix         string                     `yaml:"prefix"`
	Environment    string                     `yaml:"environment"`
	Region         string                     `yaml:"region"`
	Profile        string                     `yaml:"profile"`
	ComponentsDir  string                     `yaml:"components_dir"`
	TemplateFile   string                     `yaml:"template_file"`
	BuildDir       string                     `yaml:"build_dir"`
	Packager       string                     `yaml:"packager"`
	ScopeParameter string                     `yaml:"scope_parameter"`
	ArtifactBucket string                     `yaml:"artifact_bucket"`
	Parameters     map[string]*parameterValue `yaml:"parameters"`
	Tags           map[string]string          `yaml:"tags"`
	Capabilities   []string                   `yaml:"capabilities"`
	Components     map[string]*Component      `yaml:"components"`
	Cleanup        *Cleanup                   `yaml:"cleanup"`
	Retry          *Retry                     `yaml:"retry"`
}

// Component represents per-component overrides as they appear in YAML
type Component struct {
	Parameters   map[string]*parameterValue `yaml:"parameters"`
	Tags         map[string]string          `yaml:"tags"`
	Capabilities []string                   `yaml:"capabilities"`
}

// Cleanup represents the cleanup section; durations use Go syntax such as 30m or 10s
type Cleanup struct {
	Timeout      *time.Duration `yaml:"timeout"`
	PollInterval *time.Duration `yaml:"poll_interval"`
}

// Retry represents the retry section
type Retry struct {
	Attempts *int           `yaml:"attempts"`
	Delay    *time.Duration `yaml:"delay"`
}

// parameterValue is either a scalar or a list. Lists become CloudFormation
// CommaDelimitedList values.
type parameterValue struct {
	Literal string
	Items   []string
	IsList  bool
}

// UnmarshalYAML implements custom YAML unmarshalling for parameterValue
func (pv *parameterValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		pv.Literal = node.Value
		return nil

	case yaml.SequenceNode:
		pv.IsList = true
		pv.Items = make([]string, len(node.Content))
		for i, itemNode := range node.Content {
			if itemNode.Kind != yaml.ScalarNode {
				return fmt.Errorf("list item %d at line %d must be a scalar", i, itemNode.Line)
			}
			pv.Items[i] = itemNode.Value
		}
		return nil

	default:
		return fmt.Errorf("parameter value at line %d must be a scalar or a list of scalars", node.Line)
	}
}

// String renders the value as passed to CloudFormation
func (pv *parameterValue) String() string {
	if pv.IsList {
		return strings.Join(pv.Items, ",")
	}
	return pv.Literal
}

func toStringMap(values map[string]*parameterValue) map[string]string {
	if values == nil {
		return nil
	}

	result := make(map[string]string, len(values))
	for key, value := range values {
		if value == nil {
			result[key] = ""
			continue
		}
		result[key] = value.String()
	}
	return result
}
