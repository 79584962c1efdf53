package prodsync_test

import (
	"testing"

	"github.com/prodsync/prodsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandVariants(t *testing.T) {
	t.Parallel()

	t.Run("produces the full cross-product in nested-loop order", func(t *testing.T) {
		t.Parallel()

		groups := []prodsync.OptionGroup{
			{Name: "Color", Options: []prodsync.Option{
				{Value: "Red"},
				{Value: "Blue", Disabled: true},
			}},
			{Name: "Size", Options: []prodsync.Option{
				{Value: "S"},
				{Value: "M"},
			}},
		}

		variants, err := prodsync.ExpandVariants(groups, prodsync.ExpandConfig{
			BaseSKU:      "ABC",
			Price:        "10.00",
			DefaultStock: 20,
		})
		require.NoError(t, err)
		require.Len(t, variants, 4)

		// First group varies slowest.
		assert.Equal(t, "ABC-Red-S", variants[0].SKU)
		assert.Equal(t, "ABC-Red-M", variants[1].SKU)
		assert.Equal(t, "ABC-Blue-S", variants[2].SKU)
		assert.Equal(t, "ABC-Blue-M", variants[3].SKU)

		assert.Equal(t, 20, variants[0].InventoryQuantity)
		assert.Equal(t, 20, variants[1].InventoryQuantity)
		assert.Equal(t, 0, variants[2].InventoryQuantity, "disabled option zeroes inventory")
		assert.Equal(t, 0, variants[3].InventoryQuantity)

		for _, v := range variants {
			assert.Equal(t, "10.00", v.Price)
			assert.Equal(t, "10.00", v.CompareAtPrice)
			require.Len(t, v.OptionValues, 2)
			assert.Equal(t, "Color", v.OptionValues[0].Name)
			assert.Equal(t, "Size", v.OptionValues[1].Name)
		}
	})

	t.Run("variant count is the product of group sizes", func(t *testing.T) {
		t.Parallel()

		groups := []prodsync.OptionGroup{
			{Name: "A", Options: []prodsync.Option{{Value: "1"}, {Value: "2"}, {Value: "3"}}},
			{Name: "B", Options: []prodsync.Option{{Value: "x"}, {Value: "y"}}},
			{Name: "C", Options: []prodsync.Option{{Value: "i"}, {Value: "ii"}}},
		}

		variants, err := prodsync.ExpandVariants(groups, prodsync.ExpandConfig{BaseSKU: "S", Price: "1"})
		require.NoError(t, err)
		assert.Len(t, variants, 12)

		// Every combination is distinct.
		seen := make(map[string]bool)
		for _, v := range variants {
			assert.False(t, seen[v.SKU], "duplicate SKU %s", v.SKU)
			seen[v.SKU] = true
		}
	})

	t.Run("image comes from the first option in group order that has one", func(t *testing.T) {
		t.Parallel()

		groups := []prodsync.OptionGroup{
			{Name: "Color", Options: []prodsync.Option{
				{Value: "Red", ImageURL: "https://cdn.example.com/red.jpg"},
			}},
			{Name: "Size", Options: []prodsync.Option{
				{Value: "S", ImageURL: "https://cdn.example.com/s.jpg"},
			}},
		}

		variants, err := prodsync.ExpandVariants(groups, prodsync.ExpandConfig{BaseSKU: "X", Price: "5"})
		require.NoError(t, err)
		require.Len(t, variants, 1)
		assert.Equal(t, "https://cdn.example.com/red.jpg", variants[0].ImageURL)
	})

	t.Run("no image when no option carries one", func(t *testing.T) {
		t.Parallel()

		groups := []prodsync.OptionGroup{
			{Name: "Size", Options: []prodsync.Option{{Value: "S"}}},
		}

		variants, err := prodsync.ExpandVariants(groups, prodsync.ExpandConfig{BaseSKU: "X", Price: "5"})
		require.NoError(t, err)
		require.Len(t, variants, 1)
		assert.Empty(t, variants[0].ImageURL)
	})

	t.Run("empty groups produce an empty slice, not a default variant", func(t *testing.T) {
		t.Parallel()

		variants, err := prodsync.ExpandVariants(nil, prodsync.ExpandConfig{BaseSKU: "X", Price: "5"})
		require.NoError(t, err)
		assert.Empty(t, variants)
		assert.NotNil(t, variants)
	})

	t.Run("cap exceeded fails with ETOOMANY before materializing", func(t *testing.T) {
		t.Parallel()

		groups := []prodsync.OptionGroup{
			{Name: "A", Options: []prodsync.Option{{Value: "1"}, {Value: "2"}}},
			{Name: "B", Options: []prodsync.Option{{Value: "x"}, {Value: "y"}}},
		}

		variants, err := prodsync.ExpandVariants(groups, prodsync.ExpandConfig{
			BaseSKU:     "X",
			Price:       "5",
			MaxVariants: 3,
		})
		require.Error(t, err)
		assert.Equal(t, prodsync.ETOOMANY, prodsync.ErrorCode(err))
		assert.Nil(t, variants)
	})
}

func TestNormalizePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1 234,56 kr", "1234.56"},
		{"€19.9", "19.90"},
		{"", "0.00"},
		{"$10.00", "10.00"},
		{"free", "0.00"},
		{"199", "199.00"},
		{"0,5", "0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, prodsync.NormalizePrice(tt.in))
		})
	}
}

func TestNormalizeImageURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://cdn.example.com/a.jpg", prodsync.NormalizeImageURL("//cdn.example.com/a.jpg"))
	assert.Equal(t, "https://x/y.jpg", prodsync.NormalizeImageURL("https://x/y.jpg"))
	assert.Equal(t, "http://x/y.jpg", prodsync.NormalizeImageURL("http://x/y.jpg"))
	assert.Equal(t, "/relative/a.jpg", prodsync.NormalizeImageURL("/relative/a.jpg"))
}
