/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

// Component is an independently deployable unit discovered from the components directory
type Component struct {
	Name         string
	Dir          string
	TemplatePath string
	// HasTemplate is false when the component directory carries no template descriptor
	HasTemplate  bool
	Parameters   map[string]string
	Tags         map[string]string
	Capabilities []string
}
