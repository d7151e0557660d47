package hash

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C(t *testing.T) {
	// Known vector for CRC32-Castagnoli.
	assert.Equal(t, uint32(0xE3069283), CRC32C([]byte("123456789")))
}

func TestBucket(t *testing.T) {
	assert.Equal(t, 0, Bucket([]byte("anything"), 1))
	assert.Equal(t, 0, Bucket([]byte("anything"), 0))

	counts := make([]int, 4)
	for i := 0; i < 4000; i++ {
		b := Bucket([]byte(fmt.Sprintf("key-%d", i)), 4)
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, 4)
		counts[b]++
	}
	for _, c := range counts {
		assert.Greater(t, c, 800)
	}
	assert.Equal(t, Bucket([]byte("stable"), 7), Bucket([]byte("stable"), 7))
}
