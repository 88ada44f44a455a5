package display

import "github.com/inikonoff/fridgechef/internal/domain"

// dishLabelWidth caps dish names on buttons; full names stay in the
// message body.
const dishLabelWidth = 40

// categoriesPerRow is the menu grid width for category buttons.
const categoriesPerRow = 2

// Button is one labeled choice carrying its callback token.
type Button struct {
	Label string
	Token string
}

// Menu is a grid of buttons attached to an outgoing message.
type Menu struct {
	Rows [][]Button
}

// ForReply maps an orchestrator reply to its menu, if it has one.
func ForReply(r domain.Reply) (Menu, bool) {
	switch r.Menu {
	case domain.MenuStyle:
		return StyleMenu(), true
	case domain.MenuCategories:
		return CategoriesMenu(r.Categories), true
	case domain.MenuDishes:
		return DishesMenu(r.Dishes), true
	case domain.MenuRecipeBack:
		return RecipeBackMenu(), true
	case domain.MenuHide:
		return HideMenu(), true
	default:
		return Menu{}, false
	}
}

// StyleMenu offers the two cooking styles.
func StyleMenu() Menu {
	return Menu{Rows: [][]Button{
		{{Label: "🏠 Классический / Домашний", Token: Token{Kind: TokenStyle, Style: domain.StyleOrdinary}.Encode()}},
		{{Label: "🌶 Экзотический / Необычный", Token: Token{Kind: TokenStyle, Style: domain.StyleExotic}.Encode()}},
	}}
}

// CategoriesMenu lays out category buttons two per row, with a trailing
// reset row.
func CategoriesMenu(cats []domain.Category) Menu {
	var rows [][]Button
	var row []Button
	for _, c := range cats {
		row = append(row, Button{
			Label: c.Title(),
			Token: Token{Kind: TokenCategory, Category: c}.Encode(),
		})
		if len(row) == categoriesPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []Button{{
		Label: "🗑 Сброс (Начать заново)",
		Token: Token{Kind: TokenRestart}.Encode(),
	}})
	return Menu{Rows: rows}
}

// DishesMenu lays out one dish per row, addressed by position, with a
// trailing back-to-categories row.
func DishesMenu(dishes []domain.Dish) Menu {
	var rows [][]Button
	for i, d := range dishes {
		rows = append(rows, []Button{{
			Label: truncateLabel(d.Name, dishLabelWidth),
			Token: Token{Kind: TokenDish, DishIndex: i}.Encode(),
		}})
	}
	rows = append(rows, []Button{{
		Label: "⬅️ Назад к категориям",
		Token: Token{Kind: TokenBack}.Encode(),
	}})
	return Menu{Rows: rows}
}

// RecipeBackMenu is the single control under a delivered recipe.
func RecipeBackMenu() Menu {
	return Menu{Rows: [][]Button{
		{{Label: "⬅️ Вернуться к категориям", Token: Token{Kind: TokenBack}.Encode()}},
	}}
}

// HideMenu is the single dismiss control under a direct-mode recipe.
func HideMenu() Menu {
	return Menu{Rows: [][]Button{
		{{Label: "🗑 Скрыть", Token: Token{Kind: TokenDelete}.Encode()}},
	}}
}

// truncateLabel cuts a label to at most n runes.
func truncateLabel(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
