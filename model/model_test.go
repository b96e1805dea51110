package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModelCannedResponse(t *testing.T) {
	m := NewMockModel("test-model", "mock")
	m.AddResponse("summarize listings", "Three strong electric options under budget.")

	resp, err := m.Complete(context.Background(), Request{Prompt: "summarize listings"})
	require.NoError(t, err)
	assert.Equal(t, "Three strong electric options under budget.", resp.Text)

	resp, err = m.Complete(context.Background(), Request{Prompt: "something else"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Mock response to:")

	assert.Len(t, m.Calls(), 2)
}

func TestMockModelFailure(t *testing.T) {
	m := NewMockModel("test-model", "mock")
	m.Fail(errors.New("provider down"))

	_, err := m.Complete(context.Background(), Request{Prompt: "anything"})
	assert.Error(t, err)
}

func TestMockModelConcurrentCompletions(t *testing.T) {
	m := NewMockModel("test-model", "mock")

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := m.Complete(context.Background(), Request{Prompt: fmt.Sprintf("prompt %d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.Calls(), workers)
}

func TestMockModelInfo(t *testing.T) {
	m := NewMockModel("test-model", "mock")
	info := m.Info()
	assert.Equal(t, "test-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
}
