package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errWidgetMissing = New(NotFound, "widget not found")

func TestError_IsMatchesSentinelAndKind(t *testing.T) {
	err := fmt.Errorf("load widget: %w", errWidgetMissing)

	assert.True(t, errors.Is(err, errWidgetMissing))
	assert.True(t, errors.Is(err, NotFound))
	assert.False(t, errors.Is(err, Conflict))
	assert.Equal(t, "load widget: widget not found", err.Error())
}

func TestError_DistinctSentinelsSameKind(t *testing.T) {
	other := New(NotFound, "gadget not found")
	assert.False(t, errors.Is(errWidgetMissing, other))
	assert.True(t, errors.Is(other, NotFound))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"sentinel", errWidgetMissing, NotFound},
		{"wrapped sentinel", fmt.Errorf("ctx: %w", New(Conflict, "busy")), Conflict},
		{"bare kind", InvalidInput, InvalidInput},
		{"wrap helper", Wrap(Upstream, "send mail", errors.New("dial tcp")), Upstream},
		{"unclassified", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(Upstream, "upload object", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, Upstream))
	assert.Equal(t, "upload object: connection reset", err.Error())
}
