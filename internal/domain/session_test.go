package domain

import (
	"fmt"
	"testing"
)

func TestAddMessageBound(t *testing.T) {
	s := &Session{}
	for i := 0; i < 10; i++ {
		s.AddMessage(RoleUser, fmt.Sprintf("msg-%d", i), DefaultMaxHistory)
	}

	if len(s.History) != DefaultMaxHistory {
		t.Fatalf("history length = %d, want %d", len(s.History), DefaultMaxHistory)
	}
	// The newest entries survive, oldest first.
	for i, h := range s.History {
		want := fmt.Sprintf("msg-%d", 10-DefaultMaxHistory+i)
		if h.Text != want {
			t.Errorf("history[%d] = %q, want %q", i, h.Text, want)
		}
	}
}

func TestLastBotMessage(t *testing.T) {
	s := &Session{}
	if got := s.LastBotMessage(); got != "" {
		t.Fatalf("empty history: got %q, want empty", got)
	}

	s.AddMessage(RoleBot, "first offer", DefaultMaxHistory)
	s.AddMessage(RoleUser, "add cheese", DefaultMaxHistory)
	s.AddMessage(RoleBot, "second offer", DefaultMaxHistory)
	s.AddMessage(RoleUser, "add milk", DefaultMaxHistory)

	if got := s.LastBotMessage(); got != "second offer" {
		t.Errorf("LastBotMessage() = %q, want %q", got, "second offer")
	}
}

func TestAppendIngredients(t *testing.T) {
	tests := []struct {
		name  string
		prior string
		more  string
		want  string
	}{
		{"to empty", "", "курица", "курица"},
		{"to existing", "курица, рис", "сыр", "курица, рис, сыр"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{Ingredients: tt.prior}
			s.AppendIngredients(tt.more)
			if s.Ingredients != tt.want {
				t.Errorf("got %q, want %q", s.Ingredients, tt.want)
			}
		})
	}
}

func TestDishName(t *testing.T) {
	s := &Session{Dishes: []Dish{
		{Name: "Борщ"},
		{Name: "Плов"},
	}}

	if name, ok := s.DishName(1); !ok || name != "Плов" {
		t.Errorf("DishName(1) = %q, %v; want %q, true", name, ok, "Плов")
	}
	for _, idx := range []int{-1, 2, 100} {
		if _, ok := s.DishName(idx); ok {
			t.Errorf("DishName(%d) ok = true, want false", idx)
		}
	}
}

func TestSettleAfterRecipe(t *testing.T) {
	tests := []struct {
		name string
		sess Session
		want State
	}{
		{"with dishes", Session{Dishes: []Dish{{Name: "x"}}, Categories: []Category{CategoryMain}, Ingredients: "рис"}, StateDishMenu},
		{"with categories only", Session{Categories: []Category{CategoryMain}, Ingredients: "рис"}, StateCategoryMenu},
		{"with ingredients only", Session{Ingredients: "рис"}, StateAwaitingStyle},
		{"empty", Session{}, StateEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.sess
			s.State = StateRecipeSent
			s.SettleAfterRecipe()
			if s.State != tt.want {
				t.Errorf("state = %v, want %v", s.State, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories {
		got, ok := ParseCategory(string(c))
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %q, %v", c, got, ok)
		}
	}
	if _, ok := ParseCategory("pizza"); ok {
		t.Error("ParseCategory accepted an unknown code")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateEmpty, "empty"},
		{StateAwaitingStyle, "awaiting_style"},
		{StateCategoryMenu, "category_menu"},
		{StateDishMenu, "dish_menu"},
		{StateRecipeSent, "recipe_sent"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
