package domain

// MethodCategory classifies a payment method. The fixed rank order
// (Cash < Card < QR < EMoney < Other) drives every list and chart that
// displays methods.
type MethodCategory string

const (
	CategoryCash   MethodCategory = "CASH"
	CategoryCard   MethodCategory = "CARD"
	CategoryQR     MethodCategory = "QR"
	CategoryEMoney MethodCategory = "EMONEY"
	CategoryOther  MethodCategory = "OTHER"
)

// categoryRanks is the fixed total order over categories.
var categoryRanks = map[MethodCategory]int{
	CategoryCash:   0,
	CategoryCard:   1,
	CategoryQR:     2,
	CategoryEMoney: 3,
	CategoryOther:  4,
}

// Rank returns the sort rank of the category. Unknown categories sort last.
func (c MethodCategory) Rank() int {
	if r, ok := categoryRanks[c]; ok {
		return r
	}
	return len(categoryRanks)
}

// Valid reports whether the category is one of the fixed set.
func (c MethodCategory) Valid() bool {
	_, ok := categoryRanks[c]
	return ok
}

// PaymentMethod describes a named payment channel a user assigns to an
// expense. Position records insertion order and breaks sort ties
// deterministically.
type PaymentMethod struct {
	Name        string         `json:"name"`
	Category    MethodCategory `json:"category"`
	EarnsPoints bool           `json:"earnsPoints"`
	BaseFee     int64          `json:"baseFee"` // yen per point; meaningful only when EarnsPoints
	Protected   bool           `json:"protected"`
	Position    int            `json:"position"`
}

// IncomeCategory is a named source of income. No point rule.
type IncomeCategory struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
	Position  int    `json:"position"`
}

// Built-in registry entries seeded on first run. Both carry the protected
// flag and can never be deleted.
const (
	BuiltinMethodName         = "Cash"
	BuiltinIncomeCategoryName = "Salary"
)

// UndefinedLabel pools records whose method no longer resolves to a registry
// entry when ranking by category.
const UndefinedLabel = "undefined"

// CategoryIcon maps a method category to its display icon name.
func CategoryIcon(c MethodCategory) string {
	switch c {
	case CategoryCash:
		return "yensign"
	case CategoryCard:
		return "creditcard"
	case CategoryQR:
		return "qrcode"
	case CategoryEMoney:
		return "wave.3.left.circle.fill"
	case CategoryOther:
		return "questionmark"
	default:
		return "banknote"
	}
}

// GenreIcon maps a subscription genre to its display icon name.
func GenreIcon(genre string) string {
	switch genre {
	case "music":
		return "music.note"
	case "video":
		return "movieclapper"
	case "books":
		return "book"
	case "fashion":
		return "tshirt"
	case "games":
		return "gamecontroller"
	default:
		return "ellipsis"
	}
}
