package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceString(t *testing.T) {
	assert.Equal(t, "", SliceString([]int{}))
	assert.Equal(t, "1,2,3", SliceString([]uint32{1, 2, 3}))
	assert.Equal(t, "eth0,eth1", SliceString([]string{"eth0", "eth1"}))
}
