package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate("snack", "Ice cream", "Sweet food"))
	require.NoError(t, Validate("dry", "Canned", "Savory food"))

	assert.ErrorIs(t, Validate("meat", "Snack", "Sweet food"), ErrUnknownCategory)
	assert.ErrorIs(t, Validate("drink", "Snack", "Sweet food"), ErrUnknownSubCategory)
	assert.ErrorIs(t, Validate("drink", "Drinks", "Spicy"), ErrUnknownTag)
}

func TestLabelAndSubCategories(t *testing.T) {
	assert.Equal(t, "Dry food", Label("dry"))
	assert.Equal(t, "mystery", Label("mystery"))
	assert.Equal(t, []string{"Milk/Yogurt", "Drinks"}, SubCategories("drink"))
	assert.Nil(t, SubCategories("mystery"))
	assert.Len(t, AllSubCategories(), 9)
}

func TestCategoriesAreCopies(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 4)
	cats[0].SubCategories[0] = "changed"
	assert.Equal(t, "Snack", SubCategories("snack")[0])

	tagsCopy := Tags()
	tagsCopy[0] = "changed"
	assert.Equal(t, []string{"Savory food", "Sweet food"}, Tags())
}

func TestReassign(t *testing.T) {
	main, sub := Reassign("dry", "Snack")
	assert.Equal(t, "dry", main)
	assert.Empty(t, sub)

	main, sub = Reassign("snack", "Snack")
	assert.Equal(t, "snack", main)
	assert.Equal(t, "Snack", sub)
}
