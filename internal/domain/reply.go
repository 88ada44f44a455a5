package domain

// MenuKind names the choice menu to attach to an outgoing reply. The
// orchestrator decides which options exist; rendering them into transport
// keyboards is the presentation layer's job.
type MenuKind int

const (
	MenuNone MenuKind = iota
	MenuStyle
	MenuCategories
	MenuDishes
	MenuRecipeBack
	MenuHide
)

// Reply describes one outgoing message: text plus an optional menu. The
// Categories and Dishes slices carry the data for MenuCategories and
// MenuDishes respectively.
type Reply struct {
	Text       string
	Menu       MenuKind
	Categories []Category
	Dishes     []Dish
}

// Message is a convenience constructor for a plain text reply.
func Message(text string) Reply {
	return Reply{Text: text}
}
