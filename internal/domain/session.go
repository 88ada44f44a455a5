// Package domain defines the core types and interfaces for the recipe
// assistant. All other packages depend on domain; domain depends on nothing.
package domain

// DefaultMaxHistory bounds the per-session conversation history.
const DefaultMaxHistory = 4

// Role identifies the author of a history entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// HistoryMessage is a single entry of the bounded conversation history.
type HistoryMessage struct {
	Role Role
	Text string
}

// State is the explicit conversation state of a session.
type State int

const (
	// StateEmpty means no ingredients have been captured yet.
	StateEmpty State = iota
	// StateAwaitingStyle means ingredients are captured, style not chosen.
	StateAwaitingStyle
	// StateCategoryMenu means categories were inferred and offered.
	StateCategoryMenu
	// StateDishMenu means a dish list was generated and offered.
	StateDishMenu
	// StateRecipeSent means a full recipe was just delivered.
	StateRecipeSent
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAwaitingStyle:
		return "awaiting_style"
	case StateCategoryMenu:
		return "category_menu"
	case StateDishMenu:
		return "dish_menu"
	case StateRecipeSent:
		return "recipe_sent"
	default:
		return "unknown"
	}
}

// Session holds the conversation state for one user. Sessions are created
// lazily on first contact and live until explicitly cleared; mutations are
// serialized per user by the caller (see SessionStore.UserLock).
type Session struct {
	UserID      int64
	State       State
	History     []HistoryMessage
	Ingredients string
	Categories  []Category
	Dishes      []Dish
}

// AddMessage appends a history entry, evicting the oldest entries so that
// at most max remain. The retained entries keep their original order.
func (s *Session) AddMessage(role Role, text string, max int) {
	s.History = append(s.History, HistoryMessage{Role: role, Text: text})
	if max > 0 && len(s.History) > max {
		s.History = s.History[len(s.History)-max:]
	}
}

// LastBotMessage returns the most recent bot entry, or "" if there is none.
func (s *Session) LastBotMessage() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleBot {
			return s.History[i].Text
		}
	}
	return ""
}

// AppendIngredients adds a new ingredient declaration, comma-joined to the
// accumulated text. Appending to an absent value yields exactly the new value.
func (s *Session) AppendIngredients(more string) {
	if s.Ingredients == "" {
		s.Ingredients = more
		return
	}
	s.Ingredients = s.Ingredients + ", " + more
}

// DishName resolves a positional dish selection. Indices are valid only
// until the dish list is regenerated; anything else reports a stale menu.
func (s *Session) DishName(index int) (string, bool) {
	if index < 0 || index >= len(s.Dishes) {
		return "", false
	}
	return s.Dishes[index].Name, true
}

// SettleAfterRecipe leaves the transient recipe-sent state, deriving the
// next state from whatever data the session still holds.
func (s *Session) SettleAfterRecipe() {
	switch {
	case len(s.Dishes) > 0:
		s.State = StateDishMenu
	case len(s.Categories) > 0:
		s.State = StateCategoryMenu
	case s.Ingredients != "":
		s.State = StateAwaitingStyle
	default:
		s.State = StateEmpty
	}
}
