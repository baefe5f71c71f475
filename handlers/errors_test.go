package handlers

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRecoverableError(t *testing.T) {
	var err error
	err = NewRecoverableError("this is a test %s", "of the Emergency Broadcast System")

	// Verify that we go the expected error message.
	if err.Error() != "this is a test of the Emergency Broadcast System" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	// Verify that the error is recoverable.
	if !IsRecoverable(err) {
		t.Errorf("RecoverableError isn't considered recoverable")
	}
}

func TestUnrecoverableError(t *testing.T) {
	var err error
	err = NewUnrecoverableError("this is a test %s", "of the Emergency Broadcast System")

	// Verify that we go the expected error message.
	if err.Error() != "this is a test of the Emergency Broadcast System" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	// Verify that the error is not recoverable.
	if IsRecoverable(err) {
		t.Errorf("UnrecoverableError is considered recoverable")
	}
}

func TestIsRecoverable(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsRecoverable(errors.Wrap(NewRecoverableError("busy"), "wrapped")))
	assert.False(IsRecoverable(errors.Wrap(NewUnrecoverableError("bad"), "wrapped")))
	assert.False(IsRecoverable(fmt.Errorf("unmarked")))
	assert.False(IsRecoverable(nil))
}
