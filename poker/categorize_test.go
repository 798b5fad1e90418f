package poker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeHoleCards(t *testing.T) {
	t.Parallel()
	tests := map[HoleCardCategory][]string{
		CategoryPremium: {"AsAh", "KhKd", "JhJd", "AsKs", "AcKh", "KdAd"},
		CategoryStrong:  {"TcTh", "AsQs", "QhAc", "AdJc"},
		CategoryMedium:  {"9c9h", "7h7c", "KsQs", "QdJd", "TsKs"},
		CategoryWeak:    {"6c6h", "2c2h", "7h6h", "5d3d", "9h7h"},
		CategoryTrash:   {"7c2h", "9d3s", "Jh4c", "KcQd", "8s6d"},
	}
	for want, hands := range tests {
		for _, hand := range hands {
			assert.Equal(t, want, CategorizeHoleCards(MustParseCards(hand)), hand)
		}
	}
}

func TestCategorizeHoleCardsInvalid(t *testing.T) {
	t.Parallel()
	assert.Equal(t, CategoryUnknown, CategorizeHoleCards(MustParseCards("AsAhAc")))
	assert.Equal(t, CategoryUnknown, CategorizeHoleCards(nil))
	assert.Equal(t, CategoryUnknown, CategorizeHoleCards([]Card{{}, {}}))
}

func TestHoleCardCategoryOrderAndText(t *testing.T) {
	t.Parallel()
	assert.Greater(t, CategoryPremium, CategoryStrong)
	assert.Greater(t, CategoryWeak, CategoryTrash)
	assert.Equal(t, "Medium", CategoryMedium.String())
	assert.Equal(t, "category(9)", HoleCardCategory(9).String())

	b, err := json.Marshal(map[string]HoleCardCategory{"c": CategoryStrong})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"c":"Strong"}`, string(b))
}
