package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModalChannelConfirmFiresOnce(t *testing.T) {
	modal := NewModalChannel(ModalOptions{NewID: sequentialIDs("m")})
	ctx := context.Background()

	var results []ModalResult
	id := modal.Show(ctx, "Delete Order", "Delete #ORD-0001?", []string{"Cancel", "Delete"}, func(_ context.Context, result ModalResult) error {
		if modal.Current().Open {
			t.Fatalf("modal should be closed before the callback runs")
		}
		results = append(results, result)
		return nil
	})
	require.True(t, modal.Current().Open)

	require.NoError(t, modal.Press(ctx, id, "Delete", map[string]any{"reason": "dup"}))
	require.NoError(t, modal.Press(ctx, id, "Delete", nil))

	require.Len(t, results, 1)
	assert.Equal(t, id, results[0].ModalID)
	assert.Equal(t, "Delete", results[0].Button)
	assert.Equal(t, "dup", results[0].Values["reason"])
	assert.False(t, modal.Current().Open)
}

func TestModalChannelDismissalSkipsCallback(t *testing.T) {
	modal := NewModalChannel(ModalOptions{})
	ctx := context.Background()
	called := false
	confirm := func(context.Context, ModalResult) error {
		called = true
		return nil
	}

	id := modal.Show(ctx, "Create Order", nil, []string{"Cancel", "Create"}, confirm)
	require.NoError(t, modal.Press(ctx, id, "Cancel", nil))
	assert.False(t, called)
	assert.False(t, modal.Current().Open)

	id = modal.Show(ctx, "Create Order", nil, []string{"Cancel", "Create"}, confirm)
	modal.Dismiss(ctx, id)
	assert.False(t, called)
	assert.False(t, modal.Current().Open)
}

func TestModalChannelReplacesOpenModal(t *testing.T) {
	sink := &eventSink{}
	modal := NewModalChannel(ModalOptions{NewID: sequentialIDs("m"), Publisher: sink})
	ctx := context.Background()

	firstCalled := false
	first := modal.Show(ctx, "First", nil, []string{"OK"}, func(context.Context, ModalResult) error {
		firstCalled = true
		return nil
	})
	second := modal.Show(ctx, "Second", nil, nil, nil)

	current := modal.Current()
	assert.Equal(t, second, current.ID)
	assert.Equal(t, "Second", current.Title)
	assert.Equal(t, DefaultModalButtons, current.Buttons)

	require.NoError(t, modal.Press(ctx, first, "OK", nil), "stale presses are ignored")
	assert.False(t, firstCalled)
	assert.True(t, modal.Current().Open)
	assert.Equal(t, []string{EventModalOpened, EventModalClosed, EventModalOpened}, sink.types())
}

func TestModalChannelRejectsUnknownButton(t *testing.T) {
	modal := NewModalChannel(ModalOptions{})
	ctx := context.Background()
	id := modal.Show(ctx, "Confirm", nil, []string{"Cancel", "Confirm"}, nil)

	err := modal.Press(ctx, id, "Maybe", nil)
	require.ErrorIs(t, err, ErrInvalidAction)
	assert.True(t, modal.Current().Open)
}

func TestModalChannelHide(t *testing.T) {
	modal := NewModalChannel(ModalOptions{})
	ctx := context.Background()
	modal.Hide(ctx)
	modal.Show(ctx, "Info", "body", nil, nil)
	modal.Hide(ctx)
	assert.False(t, modal.Current().Open)
}

func TestIsDismissal(t *testing.T) {
	assert.True(t, IsDismissal("Cancel"))
	assert.True(t, IsDismissal(" close "))
	assert.False(t, IsDismissal("Delete"))
}
