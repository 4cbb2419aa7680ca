/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package packager

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// declaredParameters returns the names in the template's top-level Parameters section.
// JSON templates parse as YAML, and short-form intrinsics such as !Ref decode as tagged
// nodes, so no CloudFormation schema is needed.
func declaredParameters(body string) (map[string]bool, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	declared := map[string]bool{}
	if len(doc.Content) == 0 {
		return declared, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("failed to parse template: top level is not a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "Parameters" {
			continue
		}
		section := root.Content[i+1]
		if section.Kind != yaml.MappingNode {
			return declared, nil
		}
		for j := 0; j+1 < len(section.Content); j += 2 {
			declared[section.Content[j].Value] = true
		}
	}

	return declared, nil
}

// filterParameters keeps the parameters the template declares and returns the names dropped
func filterParameters(params map[string]string, declared map[string]bool) (map[string]string, []string) {
	kept := make(map[string]string, len(params))
	var dropped []string
	for _, k := range sortedKeys(params) {
		if declared[k] {
			kept[k] = params[k]
			continue
		}
		dropped = append(dropped, k)
	}
	return kept, dropped
}
