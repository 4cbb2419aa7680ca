/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import "time"

// StackInventoryEntry is a read-only projection of a CloudFormation stack owned by a preview environment
type StackInventoryEntry struct {
	StackName    string
	Status       string
	CreationTime time.Time
	Outputs      map[string]string
	// OutputsError records a failed output lookup without aborting the listing
	OutputsError error
}

// HasOutputs reports whether output values were retrieved for this entry
func (e StackInventoryEntry) HasOutputs() bool {
	return len(e.Outputs) > 0
}

// Ownership tags written on every preview stack
const (
	TagIdentifier = "stackpreview:identifier"
	TagComponent  = "stackpreview:component"
)
