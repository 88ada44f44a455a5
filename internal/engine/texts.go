package engine

// User-facing texts. The bot speaks Russian; messages use Telegram HTML
// markup where emphasis is wanted.
const (
	textGreeting = "👋 Здравствуйте.\n\n" +
		"🎤 <b>Отправьте</b> голосовое или текстовое сообщение с перечнем продуктов, и я подскажу, что из них можно приготовить.\n" +
		"📝 Или напишите <b>\"Дай рецепт [блюдо]\"</b>."

	textResetDone        = "🗑 Жду продукты."
	textYoureWelcome     = "На здоровье! 👨‍🍳"
	textProductsAccepted = "✅ Продукты приняты.\nКакой стиль готовки?"
	textHardToCook       = "Из этого сложно что-то приготовить. Добавьте еще продуктов."
	textNoDishes         = "Не удалось придумать рецепты. Попробуйте другую категорию или добавьте продуктов."
	textNoIngredients    = "Список продуктов пуст. Отправьте продукты или /start."
	textMenuExpired      = "Меню устарело. Выберите блюдо заново или начните с /start."
	textSessionExpired   = "Сессия истекла. Начните заново — /start."
	textOnlyOneCategory  = "Категория была одна. Добавьте продукты или начните заново."
	textPickCategory     = "📂 <b>Выберите категорию:</b>"
	textWhatToCook       = "📂 <b>Что будем готовить?</b>"
	textGenerationFailed = "Ошибка генерации. Попробуйте ещё раз."
	textSilence          = "😕 Тишина."

	waitAnalyzing = "👨‍🍳 Анализирую продукты..."
	waitListening = "🎧 Слушаю..."
)

// thanksWords trigger the closing-courtesy easter egg right after a
// recipe was delivered.
var thanksWords = map[string]struct{}{
	"спасибо":   {},
	"спс":       {},
	"благодарю": {},
}
