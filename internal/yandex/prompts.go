package yandex

import (
	"fmt"
	"strings"

	"github.com/lithammer/dedent"

	"github.com/inikonoff/fridgechef/internal/domain"
)

// Prompts live here so wording changes are a single-file edit. Each
// operation pairs a system instruction with a short user turn; the
// temperature per operation is set in gateway.go.

// promptCategoryNames are the plain Russian category names injected into
// generation prompts (the emoji labels on buttons are a separate,
// presentation-level concern).
var promptCategoryNames = map[domain.Category]string{
	domain.CategoryBreakfast: "Завтраки",
	domain.CategorySoup:      "Супы",
	domain.CategoryMain:      "Вторые блюда",
	domain.CategorySalad:     "Салаты",
	domain.CategorySnack:     "Закуски",
	domain.CategoryDessert:   "Десерты",
	domain.CategoryDrink:     "Напитки",
}

const promptValidate = `Твоя задача — модерация. Верни JSON: {"valid": true} если это съедобные продукты. Иначе false.`

func categoriesPrompt(products string) string {
	return prompt(`
		Ты опытный шеф-повар. Проанализируй список продуктов: "%s".
		Определи, какие категории блюд из этого РЕАЛЬНО приготовить (имея базовые соль/воду/масло).
		Возможные категории: "soup", "main", "salad", "breakfast", "dessert", "drink", "snack".
		ВЕРНИ ТОЛЬКО JSON список ключей. Пример: ["main", "salad"]
	`, products)
}

func dishesPrompt(products string, category domain.Category, style domain.Style) string {
	catRu, ok := promptCategoryNames[category]
	if !ok {
		catRu = "Блюда"
	}
	return prompt(`
		Ты шеф-повар. Продукты: %s.
		Задача: Придумай 5-6 разнообразных блюд в категории: "%s". Стиль: %s.
		ВЕРНИ СТРОГО JSON формат:
		[
		    {"name": "Название", "desc": "Краткое описание"}
		]
	`, products, catRu, style.PromptWord())
}

func recipePrompt(dishName, products string) string {
	return prompt(`
		Напиши подробный рецепт: "%s".
		Имеющиеся продукты: %s (можно добавлять соль, перец, сахар, подсолнечное масло, лёд и воду по умолчанию).

		СТРУКТУРА ОТВЕТА:
		1. 🍽️ [Название блюда]
		2. 🛒 Ингредиенты (с граммовками)
		3. 👨‍🍳 Приготовление (по шагам)

		4. 🎓 СОВЕТ ШЕФА (Кулинарная триада):
		Проанализируй полученное блюдо на баланс вкусов (Жирное, Кислое, Соленое, Сладкое, Острое) и текстур (Мягкое/Хрустящее).
		Напиши короткий совет: чего не хватает для идеала в контексте кулинарной триады? Порекомендуй ТОЛЬКО ОДИН ингредиент!
		Пример: "Блюдо вышло жирным и мягким. Добавьте для баланса маринованный лук (кислота/хруст) или подайте с долькой лимона."
	`, dishName, products)
}

func freestyleRecipePrompt(dishName string) string {
	return prompt(`
		Рецепт: "%s".
		Стиль: Креативный, но понятный.

		В конце обязательно добавь блок:
		🎓 СОВЕТ ПО БАЛАНСУ ВКУСОВ (какой ОДИН ИНГРЕДИЕНТ добавить для контраста текстуры, вкуса или кислотности в рамках концепции кулинарной триады).
	`, dishName)
}

func followupPrompt(userMessage, priorOffer string) string {
	return prompt(`
		Контекст: %s
		Сообщение: "%s"
		Intent: "add_products" или "select_dish".
		JSON: {"intent": "...", "products": "...", "dish_name": "..."}
	`, priorOffer, userMessage)
}

// prompt dedents a multiline template and applies the arguments.
func prompt(tmpl string, args ...any) string {
	return fmt.Sprintf(dedent.Dedent(strings.Trim(tmpl, "\n")), args...)
}
