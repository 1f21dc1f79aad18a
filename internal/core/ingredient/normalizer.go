package ingredient

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"pantry-ingest/internal/pkg/common"
)

// 各抽取方式的預設信心分數，下游的使用者編輯會覆寫
const (
	ConfidenceManual   = 1.0  // 使用者手動輸入
	ConfidenceCreator  = 0.90 // 創作者提供的文字
	ConfidenceMetadata = 0.60 // 純 metadata 樣式比對
)

// UnitVocabulary 受控單位詞彙表：輸入 token 對應標準單位
// 涵蓋容量、重量、數量三類
var UnitVocabulary = map[string]string{
	// 容量
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"tbsp": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"cup": "cup", "cups": "cup",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"pint": "pint", "pints": "pint",
	"quart": "quart", "quarts": "quart",
	"gallon": "gallon", "gallons": "gallon",
	"dash": "dash", "pinch": "pinch",
	"drop": "drop", "drops": "drop",
	// 重量
	"g": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kilogram": "kg", "kilograms": "kg",
	"mg": "mg",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	// 數量
	"clove": "clove", "cloves": "clove",
	"can": "can", "cans": "can",
	"slice": "slice", "slices": "slice",
	"piece": "piece", "pieces": "piece", "pcs": "piece",
	"bunch": "bunch", "bunches": "bunch",
	"stick": "stick", "sticks": "stick",
	"head": "head", "heads": "head",
	"sprig": "sprig", "sprigs": "sprig",
	"stalk": "stalk", "stalks": "stalk",
	"package": "package", "packages": "package", "pkg": "package",
	"handful": "handful",
}

// unicodeFractions 常見的單一字元分數
var unicodeFractions = map[string]float64{
	"¼": 0.25, "½": 0.5, "¾": 0.75,
	"⅓": 1.0 / 3.0, "⅔": 2.0 / 3.0,
	"⅛": 0.125, "⅜": 0.375, "⅝": 0.625, "⅞": 0.875,
}

// 開頭數量：混合分數、純分數、小數、整數（含 "2-3" 區間，取下限）或單一分數字元
var amountPattern = regexp.MustCompile(`^(\d+\s+\d+\s*/\s*\d+|\d+\s*/\s*\d+|\d+(?:\.\d+)?(?:\s*[-–~]\s*\d+(?:\.\d+)?)?|[¼½¾⅓⅔⅛⅜⅝⅞])\s*`)

// 結尾括號子句，如 "(diced)"
var parentheticalPattern = regexp.MustCompile(`\s*\(([^)]*)\)\s*$`)

// diacriticsRemover 去除組合用變音符號（NFD 分解後移除 Mn 類字元）
var diacriticsRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeDraft 將一筆原始食材草稿轉為正規化食材實體
// 解析不出名稱時返回 ParseFailure，絕不產出空名稱的食材
func NormalizeDraft(draft common.RawIngredientDraft, sortOrder int) (common.Ingredient, error) {
	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return common.Ingredient{}, common.ErrIngredientParseFailure
	}

	amount, rest := parseAmount(text)
	unit, rest := parseUnit(rest)
	name, preparation := splitPreparation(rest)

	name = strings.TrimSpace(name)
	if name == "" {
		return common.Ingredient{}, common.ErrIngredientParseFailure
	}

	return common.Ingredient{
		Name:           name,
		NormalizedName: NormalizeName(name),
		Amount:         amount,
		Unit:           unit,
		Preparation:    preparation,
		Confidence:     defaultConfidence(draft.Method, draft.ModelConfidence),
		Provenance:     provenanceForMethod(draft.Method),
		SortOrder:      sortOrder,
	}, nil
}

// parseAmount 解析開頭數量，無數量時返回 nil 與原文字
func parseAmount(text string) (*float64, string) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, text
	}

	token := strings.TrimSpace(m[1])
	rest := text[len(m[0]):]

	if v, ok := unicodeFractions[token]; ok {
		return &v, rest
	}

	// 混合分數 "1 1/2" 或純分數 "3/4"
	if strings.Contains(token, "/") {
		whole := 0.0
		frac := token
		if fields := strings.Fields(token); len(fields) == 2 {
			whole, _ = strconv.ParseFloat(fields[0], 64)
			frac = fields[1]
		}
		parts := strings.SplitN(frac, "/", 2)
		num, errN := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		den, errD := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errN != nil || errD != nil || den == 0 {
			return nil, text
		}
		v := whole + num/den
		return &v, rest
	}

	// 區間數量取下限
	if i := strings.IndexAny(token, "-–~"); i != -1 {
		token = strings.TrimSpace(token[:i])
	}

	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, text
	}
	return &v, rest
}

// parseUnit 解析數量之後的單位 token，不在詞彙表內時視為名稱的一部分
func parseUnit(text string) (string, string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", trimmed
	}

	token := trimmed
	rest := ""
	if i := strings.IndexFunc(trimmed, unicode.IsSpace); i != -1 {
		token = trimmed[:i]
		rest = strings.TrimSpace(trimmed[i+1:])
	}

	canonical, ok := UnitVocabulary[strings.ToLower(strings.TrimSuffix(token, "."))]
	if !ok {
		return "", trimmed
	}

	// "2 cups of flour" 的 of 屬於量詞慣用語，不算名稱
	if strings.HasPrefix(strings.ToLower(rest), "of ") {
		rest = strings.TrimSpace(rest[3:])
	}

	return canonical, rest
}

// splitPreparation 拆出結尾的處理方式子句：先取括號，再取逗號後段
func splitPreparation(text string) (string, string) {
	name := strings.TrimSpace(text)
	var parts []string

	if m := parentheticalPattern.FindStringSubmatch(name); m != nil {
		if p := strings.TrimSpace(m[1]); p != "" {
			parts = append(parts, p)
		}
		name = strings.TrimSpace(parentheticalPattern.ReplaceAllString(name, ""))
	}

	if i := strings.Index(name, ","); i != -1 {
		if p := strings.TrimSpace(name[i+1:]); p != "" {
			parts = append([]string{p}, parts...)
		}
		name = strings.TrimSpace(name[:i])
	}

	return name, strings.Join(parts, ", ")
}

// NormalizeName 產生僅用於比對的名稱：小寫、去變音符號、去尾端複數 s
// 簡化的啟發式規則，不做完整詞形還原
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.Join(strings.Fields(n), " ")

	if stripped, _, err := transform.String(diacriticsRemover, n); err == nil {
		n = stripped
	}

	if len(n) > 3 && strings.HasSuffix(n, "s") && !strings.HasSuffix(n, "ss") {
		n = n[:len(n)-1]
	}

	return n
}

// defaultConfidence 各抽取方式的起始信心分數
func defaultConfidence(method common.ExtractionMethod, modelConfidence *float64) float64 {
	switch method {
	case common.MethodManual:
		return ConfidenceManual
	case common.MethodCreator:
		return ConfidenceCreator
	case common.MethodModel:
		// 模型自報分數夾在 [0,1]；缺漏時退回 metadata 的下限
		if modelConfidence != nil {
			return common.Clamp01(*modelConfidence)
		}
		return ConfidenceMetadata
	default:
		return ConfidenceMetadata
	}
}

// provenanceForMethod 抽取方式對應的資料來源標記
func provenanceForMethod(method common.ExtractionMethod) common.Provenance {
	switch method {
	case common.MethodManual:
		return common.ProvenanceUserEdited
	case common.MethodCreator:
		return common.ProvenanceCreator
	default:
		return common.ProvenanceDetected
	}
}
