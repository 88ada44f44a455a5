package domain

// Category is a meal category code from a fixed closed vocabulary.
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategorySoup      Category = "soup"
	CategoryMain      Category = "main"
	CategorySalad     Category = "salad"
	CategorySnack     Category = "snack"
	CategoryDessert   Category = "dessert"
	CategoryDrink     Category = "drink"
)

// AllCategories lists the closed vocabulary in presentation order.
var AllCategories = []Category{
	CategoryBreakfast,
	CategorySoup,
	CategoryMain,
	CategorySalad,
	CategorySnack,
	CategoryDessert,
	CategoryDrink,
}

// ParseCategory validates a category code against the closed vocabulary.
func ParseCategory(code string) (Category, bool) {
	for _, c := range AllCategories {
		if string(c) == code {
			return c, true
		}
	}
	return "", false
}

// Title returns the human label for a category, shown on menu buttons
// and in transient wait notes.
func (c Category) Title() string {
	switch c {
	case CategoryBreakfast:
		return "🍳 Завтраки"
	case CategorySoup:
		return "🍲 Супы"
	case CategoryMain:
		return "🍝 Вторые блюда"
	case CategorySalad:
		return "🥗 Салаты"
	case CategorySnack:
		return "🥪 Закуски"
	case CategoryDessert:
		return "🍰 Десерты"
	case CategoryDrink:
		return "🥤 Напитки"
	default:
		return string(c)
	}
}

// Style is a coarse flavor-profile hint passed to dish generation. It is
// not persisted beyond the immediate generation call.
type Style string

const (
	StyleOrdinary Style = "ordinary"
	StyleExotic   Style = "exotic"
	// StyleDefault is used when the user picks a category directly and no
	// style choice is in flight.
	StyleDefault Style = ""
)

// PromptWord returns the wording injected into the generation prompt.
func (s Style) PromptWord() string {
	switch s {
	case StyleOrdinary:
		return "домашний"
	case StyleExotic:
		return "экзотический"
	default:
		return "обычный"
	}
}

// Dish is a generated {name, description} pair offered for selection.
// The JSON tags match the wire format the model is asked to produce.
type Dish struct {
	Name        string `json:"name"`
	Description string `json:"desc"`
}

// FollowupIntent classifies a free-text message sent while an offer is
// already on the table.
type FollowupIntent string

const (
	FollowupAddProducts FollowupIntent = "add_products"
	FollowupSelectDish  FollowupIntent = "select_dish"
	FollowupUnclear     FollowupIntent = "unclear"
)
