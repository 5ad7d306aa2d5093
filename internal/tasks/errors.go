package tasks

import (
	"errors"
	"fmt"
)

// Error is a rejected store operation.
//
// A rejected operation never changes the collection and never writes a
// snapshot.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// TaskID identifies the affected task, if any.
	TaskID int64

	// ItemID identifies the affected checklist item, if any.
	ItemID int64

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeCapacityExceeded indicates a task or checklist limit was reached.
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"

	// ErrCodeTaskNotFound indicates no task has the given ID.
	ErrCodeTaskNotFound ErrorCode = "TASK_NOT_FOUND"

	// ErrCodeItemNotFound indicates the task has no checklist item with the given ID.
	ErrCodeItemNotFound ErrorCode = "ITEM_NOT_FOUND"

	// ErrCodeInvalidField indicates the field cannot be updated.
	ErrCodeInvalidField ErrorCode = "INVALID_FIELD"

	// ErrCodeInvalidValue indicates the value has the wrong type or shape.
	ErrCodeInvalidValue ErrorCode = "INVALID_VALUE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.TaskID != 0 && e.ItemID != 0:
		return fmt.Sprintf("%s: %s (task=%d, item=%d)", e.Code, e.Message, e.TaskID, e.ItemID)
	case e.TaskID != 0:
		return fmt.Sprintf("%s: %s (task=%d)", e.Code, e.Message, e.TaskID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the code of a store error, or "" for any other error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCapacityError returns true if err is a capacity rejection.
// Uses errors.As to handle wrapped errors.
func IsCapacityError(err error) bool {
	return CodeOf(err) == ErrCodeCapacityExceeded
}

// IsNotFoundError returns true if err names a missing task or checklist item.
func IsNotFoundError(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeTaskNotFound || code == ErrCodeItemNotFound
}

func newTaskCapacityError(limit int) *Error {
	return &Error{
		Code:    ErrCodeCapacityExceeded,
		Message: fmt.Sprintf("task limit of %d reached", limit),
		Details: map[string]string{"limit": fmt.Sprintf("%d", limit)},
	}
}

func newChecklistCapacityError(taskID int64, limit int) *Error {
	return &Error{
		Code:    ErrCodeCapacityExceeded,
		Message: fmt.Sprintf("checklist limit of %d reached", limit),
		TaskID:  taskID,
		Details: map[string]string{"limit": fmt.Sprintf("%d", limit)},
	}
}

func newTaskNotFoundError(taskID int64) *Error {
	return &Error{
		Code:    ErrCodeTaskNotFound,
		Message: "no such task",
		TaskID:  taskID,
	}
}

func newItemNotFoundError(taskID, itemID int64) *Error {
	return &Error{
		Code:    ErrCodeItemNotFound,
		Message: "no such checklist item",
		TaskID:  taskID,
		ItemID:  itemID,
	}
}

func newInvalidFieldError(field Field) *Error {
	return &Error{
		Code:    ErrCodeInvalidField,
		Message: fmt.Sprintf("field %q cannot be updated", field),
		Details: map[string]string{"field": string(field)},
	}
}

func newInvalidValueError(taskID int64, field Field, want string, got any) *Error {
	return &Error{
		Code:    ErrCodeInvalidValue,
		Message: fmt.Sprintf("field %q wants %s, got %T", field, want, got),
		TaskID:  taskID,
		Details: map[string]string{"field": string(field)},
	}
}
