package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-ingest/internal/pkg/common"
)

func TestApplyUserEdit(t *testing.T) {
	ing := common.Ingredient{
		Name:           "flour",
		NormalizedName: "flour",
		Confidence:     0.6,
		Provenance:     common.ProvenanceDetected,
		SortOrder:      2,
	}

	edited, err := ApplyUserEdit(ing, UserEdit{
		Name:   "Bread Flour",
		Amount: floatPtr(3),
		Unit:   "cup",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bread Flour", edited.Name)
	assert.Equal(t, "bread flour", edited.NormalizedName)
	assert.Equal(t, common.ProvenanceUserEdited, edited.Provenance)
	assert.InDelta(t, 1.0, edited.Confidence, 1e-9)
	assert.Equal(t, 2, edited.SortOrder) // 排序不受編輯影響

	// 空名稱拒絕
	_, err = ApplyUserEdit(ing, UserEdit{Name: ""})
	assert.True(t, common.IsValidationError(err))
}

func TestApplySubstitution(t *testing.T) {
	ing := common.Ingredient{
		Name:           "heavy cream",
		NormalizedName: "heavy cream",
		Confidence:     0.9,
		Provenance:     common.ProvenanceCreator,
	}

	sub, err := ApplySubstitution(ing, "coconut cream", "dairy-free household")
	require.NoError(t, err)

	assert.Equal(t, "coconut cream", sub.Name)
	assert.Equal(t, common.ProvenanceSubstitution, sub.Provenance)
	assert.Equal(t, "heavy cream", sub.SubstitutionFor)
	assert.Equal(t, "dairy-free household", sub.SubstitutionRationale)

	// 不變量：substitution 必須帶原名稱與理由
	_, err = ApplySubstitution(ing, "coconut cream", "")
	assert.True(t, common.IsValidationError(err))
	_, err = ApplySubstitution(ing, "", "why not")
	assert.True(t, common.IsValidationError(err))
}
