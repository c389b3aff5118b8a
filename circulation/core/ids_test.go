package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

func Test_IDAllocator_CountsPerKind(t *testing.T) {
	// arrange
	ids := core.NewIDAllocator()

	// act
	firstBook := ids.Next(core.KindBook)
	secondBook := ids.Next(core.KindBook)
	firstBorrower := ids.Next(core.KindBorrower)

	// assert
	assert.Equal(t, core.ID(1), firstBook)
	assert.Equal(t, core.ID(2), secondBook)
	assert.Equal(t, core.ID(1), firstBorrower)
}

func Test_IDAllocator_SetCount_NextIDFollowsCount(t *testing.T) {
	// arrange
	ids := core.NewIDAllocator()

	// act
	ok := ids.SetCount(core.KindBook, 5)
	book := core.NewBook(ids, "Emma", "Fiction", "Jane Austen")

	// assert
	assert.True(t, ok)
	assert.Equal(t, core.ID(6), book.ID)
}

func Test_IDAllocator_SetCount_NeverMovesBackwards(t *testing.T) {
	// arrange
	ids := core.NewIDAllocator()
	ids.SetCount(core.KindLoan, 10)

	// act
	ok := ids.SetCount(core.KindLoan, 3)

	// assert
	assert.False(t, ok)
	assert.Equal(t, core.ID(11), ids.Next(core.KindLoan))
}

func Test_NewBook_SameDataGetsDistinctIDs(t *testing.T) {
	// arrange
	ids := core.NewIDAllocator()

	// act
	first := core.NewBook(ids, "Emma", "Fiction", "Jane Austen")
	second := core.NewBook(ids, "Emma", "Fiction", "Jane Austen")

	// assert
	assert.NotEqual(t, first.ID, second.ID)
}

func Test_ParseID(t *testing.T) {
	id, err := core.ParseID("42")

	assert.NoError(t, err)
	assert.Equal(t, "42", id.String())

	_, err = core.ParseID("x")
	assert.Error(t, err)
}
