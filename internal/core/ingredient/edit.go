package ingredient

import (
	"pantry-ingest/internal/pkg/common"
)

// UserEdit 使用者對單一食材的修正內容
type UserEdit struct {
	Name        string   `json:"name"`
	Amount      *float64 `json:"amount,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Preparation string   `json:"preparation,omitempty"`
	IsOptional  bool     `json:"is_optional"`
}

// ApplyUserEdit 套用使用者編輯：食材一生只允許被變更一次
// 人工確認過的值信心一律為 1.0，provenance 轉為 user_edited
func ApplyUserEdit(ing common.Ingredient, edit UserEdit) (common.Ingredient, error) {
	if edit.Name == "" {
		return ing, common.NewValidationError("edited name must not be empty")
	}

	ing.Name = edit.Name
	ing.NormalizedName = NormalizeName(edit.Name)
	ing.Amount = edit.Amount
	ing.Unit = edit.Unit
	ing.Preparation = edit.Preparation
	ing.IsOptional = edit.IsOptional
	ing.Confidence = 1.0
	ing.Provenance = common.ProvenanceUserEdited

	return ing, nil
}

// ApplySubstitution 以替代品取代原食材
// 替代必須記錄被取代的原名稱與理由，否則視為不合法
func ApplySubstitution(ing common.Ingredient, substituteName, rationale string) (common.Ingredient, error) {
	if substituteName == "" {
		return ing, common.NewValidationError("substitute name must not be empty")
	}
	if rationale == "" {
		return ing, common.NewValidationError("substitution rationale is required")
	}

	original := ing.Name
	ing.Name = substituteName
	ing.NormalizedName = NormalizeName(substituteName)
	ing.Provenance = common.ProvenanceSubstitution
	ing.SubstitutionFor = original
	ing.SubstitutionRationale = rationale

	return ing, nil
}
