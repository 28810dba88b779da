package main

import (
	"testing"

	"github.com/limaJavier/seatplanning/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestGenerateInstance(t *testing.T) {
	raw := generateInstance(2, 2, 4, 4)

	input, err := model.ProcessRawInput(raw)
	assert.Nil(t, err)

	metadata := metadataOf("corridor-pair", input)
	assert.Equal(t, 2, metadata.Corridors)
	assert.Equal(t, 4, metadata.Tables)
	assert.Equal(t, 16, metadata.Seats)
	assert.Equal(t, 4, metadata.Teams)
	assert.Equal(t, 14, metadata.People) // sizes cycle through 2, 3, 4, 5
	assert.Equal(t, 3, metadata.Scenarios)
}

func TestEveryInstanceIsValid(t *testing.T) {
	for _, instance := range getInstances() {
		_, err := model.ProcessRawInput(instance.Input)

		assert.Nil(t, err, instance.Name)
	}
}
