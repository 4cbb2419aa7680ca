/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/google/uuid"
)

// StackStatus represents the status of a CloudFormation stack
type StackStatus string

const (
	StackStatusCreateInProgress         StackStatus = "CREATE_IN_PROGRESS"
	StackStatusCreateComplete           StackStatus = "CREATE_COMPLETE"
	StackStatusCreateFailed             StackStatus = "CREATE_FAILED"
	StackStatusDeleteInProgress         StackStatus = "DELETE_IN_PROGRESS"
	StackStatusDeleteComplete           StackStatus = "DELETE_COMPLETE"
	StackStatusDeleteFailed             StackStatus = "DELETE_FAILED"
	StackStatusUpdateInProgress         StackStatus = "UPDATE_IN_PROGRESS"
	StackStatusUpdateComplete           StackStatus = "UPDATE_COMPLETE"
	StackStatusUpdateFailed             StackStatus = "UPDATE_FAILED"
	StackStatusUpdateRollbackInProgress StackStatus = "UPDATE_ROLLBACK_IN_PROGRESS"
	StackStatusUpdateRollbackComplete   StackStatus = "UPDATE_ROLLBACK_COMPLETE"
	StackStatusUpdateRollbackFailed     StackStatus = "UPDATE_ROLLBACK_FAILED"
	StackStatusRollbackInProgress       StackStatus = "ROLLBACK_IN_PROGRESS"
	StackStatusRollbackComplete         StackStatus = "ROLLBACK_COMPLETE"
	StackStatusRollbackFailed           StackStatus = "ROLLBACK_FAILED"
	StackStatusReviewInProgress         StackStatus = "REVIEW_IN_PROGRESS"
	StackStatusImportComplete           StackStatus = "IMPORT_COMPLETE"
)

// IsInProgress reports whether the stack is still transitioning
func (s StackStatus) IsInProgress() bool {
	return strings.HasSuffix(string(s), "_IN_PROGRESS")
}

// IsDeployed reports whether the stack reached a successful create or update
func (s StackStatus) IsDeployed() bool {
	switch s {
	case StackStatusCreateComplete, StackStatusUpdateComplete, StackStatusImportComplete:
		return true
	default:
		return false
	}
}

const (
	// changeSetTimeout bounds how long a change set may take to compute
	changeSetTimeout = 5 * time.Minute

	// stackOperationTimeout bounds how long an executed change set may run
	stackOperationTimeout = 60 * time.Minute

	defaultPollInterval = 5 * time.Second

	changeSetNamePrefix = "stackpreview-"
)

// Stack represents a CloudFormation stack with essential information
type Stack struct {
	Name         string
	Status       StackStatus
	StatusReason string
	CreatedTime  *time.Time
	UpdatedTime  *time.Time
	Description  string
	Parameters   map[string]string
	Outputs      map[string]string
	Tags         map[string]string
}

// Parameter represents a CloudFormation stack parameter
type Parameter struct {
	Key   string
	Value string
}

// DeployStackInput contains parameters for creating or updating a stack.
// TemplateURL takes precedence over TemplateBody when both are set.
type DeployStackInput struct {
	StackName    string
	TemplateBody string
	TemplateURL  string
	Parameters   []Parameter
	Tags         map[string]string
	Capabilities []string
}

// DeployStackOutput describes the outcome of a stack upsert
type DeployStackOutput struct {
	ChangeSetID string
	Created     bool
	NoChanges   bool
}

// DeleteStackInput contains parameters for deleting a stack
type DeleteStackInput struct {
	StackName string
}

// WaitOptions bounds a stack wait
type WaitOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// DefaultCloudFormationOperations provides CloudFormation-specific operations
type DefaultCloudFormationOperations struct {
	client       CloudFormationClient
	pollInterval time.Duration
}

// NewCloudFormationOperationsWithClient creates operations with a custom client (for testing)
func NewCloudFormationOperationsWithClient(client CloudFormationClient) *DefaultCloudFormationOperations {
	return &DefaultCloudFormationOperations{
		client:       client,
		pollInterval: defaultPollInterval,
	}
}

// SetPollInterval changes how often change sets and stack operations are polled
func (cf *DefaultCloudFormationOperations) SetPollInterval(interval time.Duration) {
	cf.pollInterval = interval
}

// DeployStack creates or updates a stack through a change set. A change set without
// changes is discarded and reported as NoChanges rather than as an error.
func (cf *DefaultCloudFormationOperations) DeployStack(ctx context.Context, input DeployStackInput) (*DeployStackOutput, error) {
	changeSetType, err := cf.changeSetType(ctx, input.StackName)
	if err != nil {
		return nil, err
	}

	createInput := &cloudformation.CreateChangeSetInput{
		StackName:     aws.String(input.StackName),
		ChangeSetName: aws.String(changeSetNamePrefix + uuid.NewString()),
		ChangeSetType: changeSetType,
		Parameters:    toParameters(input.Parameters),
		Tags:          toTags(input.Tags),
		Capabilities:  toCapabilities(input.Capabilities),
	}
	if input.TemplateURL != "" {
		createInput.TemplateURL = aws.String(input.TemplateURL)
	} else {
		createInput.TemplateBody = aws.String(input.TemplateBody)
	}

	createOutput, err := cf.client.CreateChangeSet(ctx, createInput)
	if err != nil {
		return nil, fmt.Errorf("failed to create change set for stack %s: %w", input.StackName, classify(err))
	}

	changeSetID := aws.ToString(createOutput.Id)
	output := &DeployStackOutput{
		ChangeSetID: changeSetID,
		Created:     changeSetType == types.ChangeSetTypeCreate,
	}

	described, err := cf.waitForChangeSet(ctx, changeSetID)
	if err != nil {
		return nil, fmt.Errorf("change set for stack %s did not complete: %w", input.StackName, err)
	}

	if described.Status == types.ChangeSetStatusFailed {
		reason := aws.ToString(described.StatusReason)
		if isNoChangesReason(reason) {
			// Empty change sets linger in the console unless removed
			if err := cf.deleteChangeSet(ctx, changeSetID); err != nil {
				return nil, err
			}
			output.NoChanges = true
			return output, nil
		}
		return nil, fmt.Errorf("%w: change set for stack %s failed: %s", ErrStackOperationFailed, input.StackName, reason)
	}

	_, err = cf.client.ExecuteChangeSet(ctx, &cloudformation.ExecuteChangeSetInput{
		ChangeSetName: aws.String(changeSetID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute change set for stack %s: %w", input.StackName, classify(err))
	}

	if err := cf.waitForStackOperation(ctx, input.StackName); err != nil {
		return nil, err
	}

	return output, nil
}

// changeSetType decides between creating and updating the stack. A stack in
// ROLLBACK_COMPLETE is deleted first.
func (cf *DefaultCloudFormationOperations) changeSetType(ctx context.Context, stackName string) (types.ChangeSetType, error) {
	stack, err := cf.GetStack(ctx, stackName)
	if errors.Is(err, ErrStackNotFound) {
		return types.ChangeSetTypeCreate, nil
	}
	if err != nil {
		return "", err
	}

	switch stack.Status {
	case StackStatusReviewInProgress:
		// A stack left behind by a failed create change set has no resources yet
		return types.ChangeSetTypeCreate, nil
	case StackStatusRollbackComplete:
		// A failed first create can only be deleted, so recreate it
		if err := cf.DeleteStack(ctx, DeleteStackInput{StackName: stackName}); err != nil {
			return "", err
		}
		wait := WaitOptions{Timeout: stackOperationTimeout, PollInterval: cf.pollInterval}
		if err := cf.WaitForStackDelete(ctx, stackName, wait); err != nil {
			return "", fmt.Errorf("failed to remove rolled back stack %s: %w", stackName, err)
		}
		return types.ChangeSetTypeCreate, nil
	}

	return types.ChangeSetTypeUpdate, nil
}

// waitForChangeSet waits for a change set to reach CREATE_COMPLETE or FAILED
func (cf *DefaultCloudFormationOperations) waitForChangeSet(ctx context.Context, changeSetID string) (*cloudformation.DescribeChangeSetOutput, error) {
	var described *cloudformation.DescribeChangeSetOutput

	err := poll(ctx, changeSetTimeout, cf.pollInterval, func() (bool, error) {
		out, err := cf.client.DescribeChangeSet(ctx, &cloudformation.DescribeChangeSetInput{
			ChangeSetName: aws.String(changeSetID),
		})
		if err != nil {
			return false, fmt.Errorf("failed to describe change set %s: %w", changeSetID, classify(err))
		}

		switch out.Status {
		case types.ChangeSetStatusCreateComplete, types.ChangeSetStatusFailed:
			described = out
			return true, nil
		case types.ChangeSetStatusCreatePending, types.ChangeSetStatusCreateInProgress:
			return false, nil
		default:
			return false, fmt.Errorf("unexpected change set status: %s", out.Status)
		}
	})
	if err != nil {
		return nil, err
	}

	return described, nil
}

// waitForStackOperation waits for an executed change set to settle
func (cf *DefaultCloudFormationOperations) waitForStackOperation(ctx context.Context, stackName string) error {
	return poll(ctx, stackOperationTimeout, cf.pollInterval, func() (bool, error) {
		stack, err := cf.GetStack(ctx, stackName)
		if err != nil {
			return false, err
		}

		if stack.Status.IsInProgress() {
			return false, nil
		}
		if stack.Status.IsDeployed() {
			return true, nil
		}

		return false, fmt.Errorf("%w: stack %s ended in %s: %s", ErrStackOperationFailed, stackName, stack.Status, stack.StatusReason)
	})
}

// deleteChangeSet deletes a CloudFormation change set
func (cf *DefaultCloudFormationOperations) deleteChangeSet(ctx context.Context, changeSetID string) error {
	_, err := cf.client.DeleteChangeSet(ctx, &cloudformation.DeleteChangeSetInput{
		ChangeSetName: aws.String(changeSetID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete change set %s: %w", changeSetID, classify(err))
	}
	return nil
}

// DeleteStack deletes a CloudFormation stack
func (cf *DefaultCloudFormationOperations) DeleteStack(ctx context.Context, input DeleteStackInput) error {
	_, err := cf.client.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName: aws.String(input.StackName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete stack %s: %w", input.StackName, classify(err))
	}

	return nil
}

// WaitForStackDelete blocks until the stack is gone, fails to delete, or the wait times out
func (cf *DefaultCloudFormationOperations) WaitForStackDelete(ctx context.Context, stackName string, opts WaitOptions) error {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = cf.pollInterval
	}

	err := poll(ctx, opts.Timeout, interval, func() (bool, error) {
		stack, err := cf.GetStack(ctx, stackName)
		if errors.Is(err, ErrStackNotFound) {
			return true, nil
		}
		if err != nil {
			return false, err
		}

		switch stack.Status {
		case StackStatusDeleteComplete:
			return true, nil
		case StackStatusDeleteFailed:
			return false, fmt.Errorf("%w: stack %s ended in %s: %s", ErrStackOperationFailed, stackName, stack.Status, stack.StatusReason)
		default:
			return false, nil
		}
	})
	if errors.Is(err, ErrWaitTimeout) {
		return fmt.Errorf("stack %s not deleted after %s: %w", stackName, opts.Timeout, err)
	}

	return err
}

// GetStack retrieves information about a specific stack
func (cf *DefaultCloudFormationOperations) GetStack(ctx context.Context, stackName string) (*Stack, error) {
	result, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		if isStackNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrStackNotFound, stackName)
		}
		return nil, fmt.Errorf("failed to describe stack %s: %w", stackName, classify(err))
	}

	if len(result.Stacks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrStackNotFound, stackName)
	}

	cfnStack := result.Stacks[0]
	stack := &Stack{
		Name:         aws.ToString(cfnStack.StackName),
		Status:       StackStatus(cfnStack.StackStatus),
		StatusReason: aws.ToString(cfnStack.StackStatusReason),
		CreatedTime:  cfnStack.CreationTime,
		UpdatedTime:  cfnStack.LastUpdatedTime,
		Description:  aws.ToString(cfnStack.Description),
		Parameters:   make(map[string]string),
		Outputs:      make(map[string]string),
		Tags:         make(map[string]string),
	}

	for _, param := range cfnStack.Parameters {
		stack.Parameters[aws.ToString(param.ParameterKey)] = aws.ToString(param.ParameterValue)
	}

	for _, output := range cfnStack.Outputs {
		stack.Outputs[aws.ToString(output.OutputKey)] = aws.ToString(output.OutputValue)
	}

	for _, tag := range cfnStack.Tags {
		stack.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	return stack, nil
}

// ListStacks returns every CloudFormation stack that has not been deleted
func (cf *DefaultCloudFormationOperations) ListStacks(ctx context.Context) ([]*Stack, error) {
	var stacks []*Stack
	paginator := cloudformation.NewListStacksPaginator(cf.client, &cloudformation.ListStacksInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list stacks: %w", classify(err))
		}

		for _, summary := range page.StackSummaries {
			// Skip deleted stacks
			if summary.StackStatus == types.StackStatusDeleteComplete {
				continue
			}

			stacks = append(stacks, &Stack{
				Name:         aws.ToString(summary.StackName),
				Status:       StackStatus(summary.StackStatus),
				StatusReason: aws.ToString(summary.StackStatusReason),
				CreatedTime:  summary.CreationTime,
				UpdatedTime:  summary.LastUpdatedTime,
				Description:  aws.ToString(summary.TemplateDescription),
			})
		}
	}

	return stacks, nil
}

// ValidateTemplate validates a CloudFormation template
func (cf *DefaultCloudFormationOperations) ValidateTemplate(ctx context.Context, templateBody string) error {
	_, err := cf.client.ValidateTemplate(ctx, &cloudformation.ValidateTemplateInput{
		TemplateBody: aws.String(templateBody),
	})
	if err != nil {
		return fmt.Errorf("template validation failed: %w", classify(err))
	}

	return nil
}

// StackExists checks if a stack exists
func (cf *DefaultCloudFormationOperations) StackExists(ctx context.Context, stackName string) (bool, error) {
	_, err := cf.GetStack(ctx, stackName)
	if errors.Is(err, ErrStackNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check if stack exists: %w", err)
	}

	return true, nil
}

// poll calls check until it reports done, fails, or the timeout elapses
func poll(ctx context.Context, timeout, interval time.Duration, check func() (bool, error)) error {
	deadline := time.Now().Add(timeout)

	for {
		done, err := check()
		if err != nil || done {
			return err
		}

		if !time.Now().Before(deadline) {
			return ErrWaitTimeout
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func toParameters(parameters []Parameter) []types.Parameter {
	params := make([]types.Parameter, len(parameters))
	for i, p := range parameters {
		params[i] = types.Parameter{
			ParameterKey:   aws.String(p.Key),
			ParameterValue: aws.String(p.Value),
		}
	}
	return params
}

func toTags(tags map[string]string) []types.Tag {
	result := make([]types.Tag, 0, len(tags))
	for k, v := range tags {
		result = append(result, types.Tag{
			Key:   aws.String(k),
			Value: aws.String(v),
		})
	}
	return result
}

func toCapabilities(capabilities []string) []types.Capability {
	result := make([]types.Capability, len(capabilities))
	for i, c := range capabilities {
		result[i] = types.Capability(c)
	}
	return result
}
