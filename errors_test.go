package lgmp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredErrorMessage(t *testing.T) {
	err := newQueueError("Post", 7, CodeQueueFull, "ring has no free slots")
	assert.Equal(t, "lgmp: ring has no free slots (op=Post queue=7)", err.Error())
}

func TestErrorWithoutQueueContext(t *testing.T) {
	err := newError("Init", CodeInvalidSize, "region too small")
	assert.Equal(t, "lgmp: region too small (op=Init)", err.Error())
}

func TestIsCodeMatchesWrappedError(t *testing.T) {
	err := fmt.Errorf("posting: %w", newQueueError("Post", 1, CodeQueueFull, "full"))
	assert.True(t, IsCode(err, CodeQueueFull))
	assert.False(t, IsCode(err, CodeNoMem))
}

func TestErrorsIsAgainstBareCode(t *testing.T) {
	err := newError("AddQueue", CodeHostStarted, "layout already frozen")
	assert.True(t, errors.Is(err, CodeHostStarted))
}

func TestInvalidSubscriberBitUsesDedicatedCode(t *testing.T) {
	err := newQueueError("Subscribe", 2, CodeInvalidSubscriber, "subscriber bit out of range")
	assert.True(t, IsCode(err, CodeInvalidSubscriber))
	assert.False(t, IsCode(err, CodeInvalidSize))
}
