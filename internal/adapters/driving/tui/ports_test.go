package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pdfindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfindex/internal/core/services"
)

func TestNewPorts(t *testing.T) {
	store := memory.NewStore()
	topics := services.NewTopicService(store)
	highlights := services.NewHighlightService(store)

	ports := NewPorts(topics, highlights, nil)

	assert.Equal(t, topics, ports.Topic)
	assert.Equal(t, highlights, ports.Highlight)
	assert.Nil(t, ports.Library)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	store := memory.NewStore()

	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"missing topic", &Ports{Highlight: services.NewHighlightService(store)}, ErrMissingTopicService},
		{"missing highlight", &Ports{Topic: services.NewTopicService(store)}, ErrMissingHighlightService},
		{"empty", &Ports{}, ErrMissingTopicService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.want)
		})
	}
}
