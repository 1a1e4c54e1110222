package internal

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterPermutations(t *testing.T) {
	assert := assert.New(t)

	var perms [][]int
	for perm := range IterPermutations([]int{1, 2, 3}) {
		perms = append(perms, perm)
	}

	assert.Len(perms, 6)
	assert.Equal([]int{1, 2, 3}, perms[0])

	slices.SortFunc(perms, slices.Compare)
	assert.Equal([][]int{
		{1, 2, 3}, {1, 3, 2},
		{2, 1, 3}, {2, 3, 1},
		{3, 1, 2}, {3, 2, 1},
	}, perms)
}

func TestIterPermutations_Edges(t *testing.T) {
	assert := assert.New(t)

	var count int
	for perm := range IterPermutations([]int{}) {
		assert.Empty(perm)
		count++
	}
	assert.Equal(1, count)

	count = 0
	for range IterPermutations([]int{0, 1, 2, 3, 4}) {
		count++
	}
	assert.Equal(120, count)

	count = 0
	for range IterPermutations([]int{0, 1, 2, 3}) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(3, count)
}

func TestIterPermutations_Copy(t *testing.T) {
	assert := assert.New(t)

	items := []int{1, 2}
	for perm := range IterPermutations(items) {
		perm[0] = 9
	}
	assert.Equal([]int{1, 2}, items)
}
