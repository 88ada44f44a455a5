// Package engine implements the conversation state machine that walks a
// user from ingredient capture to a delivered recipe. It depends only on
// the domain ports and is fully testable with fakes.
//
// Every public handler serializes on the per-user lock for the whole
// event, backend calls included, so a menu tap can never interleave with
// a slow transcription for the same user. No error crosses this boundary:
// each outcome is a user-visible reply.
package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inikonoff/fridgechef/internal/domain"
)

// Option configures the engine.
type Option func(*Engine)

// WithMaxHistory sets the conversation history bound per session.
func WithMaxHistory(n int) Option {
	return func(e *Engine) {
		e.maxHistory = n
	}
}

// Engine is the conversation orchestrator.
type Engine struct {
	store      domain.SessionStore
	ai         domain.Gateway
	log        *zap.SugaredLogger
	maxHistory int
}

// New creates the orchestrator with the given dependencies and options.
func New(store domain.SessionStore, ai domain.Gateway, log *zap.SugaredLogger, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		ai:         ai,
		log:        log,
		maxHistory: domain.DefaultMaxHistory,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// lockUser acquires the per-user serialization lock and returns its
// release. Used as: defer e.lockUser(id)().
func (e *Engine) lockUser(userID int64) func() {
	mu := e.store.UserLock(userID)
	mu.Lock()
	return mu.Unlock
}

// Start clears the user's session and greets them. Bound to /start.
func (e *Engine) Start(userID int64) []domain.Reply {
	defer e.lockUser(userID)()

	e.store.Clear(userID)
	return []domain.Reply{domain.Message(textGreeting)}
}

// Reset clears the user's session. Bound to the restart menu button.
func (e *Engine) Reset(userID int64) []domain.Reply {
	defer e.lockUser(userID)()

	e.store.Clear(userID)
	e.log.Infof("user %d reset session", userID)
	return []domain.Reply{domain.Message(textResetDone)}
}

// HandleText processes a free-text message.
func (e *Engine) HandleText(ctx context.Context, userID int64, text string, p domain.Progress) []domain.Reply {
	defer e.lockUser(userID)()
	return e.handleText(ctx, userID, text, p)
}

// HandleVoice transcribes a voice message and feeds the text through the
// normal text path. An empty transcription leaves the session untouched.
func (e *Engine) HandleVoice(ctx context.Context, userID int64, audio []byte, p domain.Progress) []domain.Reply {
	defer e.lockUser(userID)()

	end := p.Begin(ctx, waitListening)
	text := e.ai.Transcribe(ctx, audio)
	end()

	if text == "" {
		return []domain.Reply{domain.Message(textSilence)}
	}
	e.log.Debugf("user %d voice transcribed: %q", userID, text)
	return e.handleText(ctx, userID, text, p)
}

func (e *Engine) handleText(ctx context.Context, userID int64, text string, p domain.Progress) []domain.Reply {
	text = strings.TrimSpace(text)
	sess := e.store.GetOrCreate(userID)

	if isThanks(text) {
		if sess.State == domain.StateRecipeSent {
			// Clear only the transient recipe-sent mark; ingredients and
			// offers stay intact.
			sess.SettleAfterRecipe()
			return []domain.Reply{domain.Message(textYoureWelcome)}
		}
	}
	if sess.State == domain.StateRecipeSent {
		sess.SettleAfterRecipe()
	}

	// First contribution starts the session: validate, store, ask style.
	if sess.Ingredients == "" {
		if !e.ai.ValidateFood(ctx, text) {
			e.log.Infof("user %d input rejected as non-food: %q", userID, text)
			return []domain.Reply{domain.Message(fmt.Sprintf("🤨 <b>\"%s\"</b> — не похоже на продукты.", text))}
		}
		sess.Ingredients = text
		sess.AddMessage(domain.RoleUser, text, e.maxHistory)
		sess.State = domain.StateAwaitingStyle
		return []domain.Reply{{Text: textProductsAccepted, Menu: domain.MenuStyle}}
	}

	// Ingredients already exist: the message is treated as an addition.
	// The classified intent is fetched and logged, but deliberately not
	// branched on — see the collapsed-intent note in DESIGN.md.
	intent := e.ai.ClassifyFollowup(ctx, text, sess.LastBotMessage())
	e.log.Debugf("user %d followup classified as %s, treating as addition", userID, intent)

	// Committed before regeneration: a downstream failure must not lose
	// the user's newly added ingredients.
	sess.AppendIngredients(text)
	sess.AddMessage(domain.RoleUser, text, e.maxHistory)

	replies := []domain.Reply{domain.Message(fmt.Sprintf("➕ Добавил: <b>%s</b>.", text))}
	return append(replies, e.categoryFlow(ctx, sess, domain.StyleDefault, p)...)
}

// HandleStyle processes a style selection.
func (e *Engine) HandleStyle(ctx context.Context, userID int64, style domain.Style, p domain.Progress) []domain.Reply {
	defer e.lockUser(userID)()

	sess, ok := e.store.Get(userID)
	if !ok || sess.Ingredients == "" {
		return []domain.Reply{domain.Message(textNoIngredients)}
	}
	return e.categoryFlow(ctx, sess, style, p)
}

// HandleCategory processes a category selection from the menu.
func (e *Engine) HandleCategory(ctx context.Context, userID int64, category domain.Category, p domain.Progress) []domain.Reply {
	defer e.lockUser(userID)()

	sess, ok := e.store.Get(userID)
	if !ok || sess.Ingredients == "" {
		return []domain.Reply{domain.Message(textNoIngredients)}
	}
	return e.dishFlow(ctx, sess, category, domain.StyleDefault, p)
}

// HandleDish processes a positional dish selection and delivers the
// recipe. Stale indices report an expired menu, never a crash.
func (e *Engine) HandleDish(ctx context.Context, userID int64, index int, p domain.Progress) []domain.Reply {
	defer e.lockUser(userID)()

	sess, ok := e.store.Get(userID)
	if !ok {
		return []domain.Reply{domain.Message(textMenuExpired)}
	}
	name, ok := sess.DishName(index)
	if !ok {
		e.log.Infof("user %d tapped stale dish index %d (have %d)", userID, index, len(sess.Dishes))
		return []domain.Reply{domain.Message(textMenuExpired)}
	}

	end := p.Begin(ctx, fmt.Sprintf("👨‍🍳 Пишу рецепт: <b>%s</b>...", name))
	recipe := e.ai.WriteRecipe(ctx, name, sess.Ingredients)
	end()

	if recipe == "" {
		// Failed call: session stays exactly as it was.
		return []domain.Reply{domain.Message(textGenerationFailed)}
	}

	sess.State = domain.StateRecipeSent
	e.log.Infof("user %d got recipe for %q", userID, name)
	return []domain.Reply{{Text: recipe, Menu: domain.MenuRecipeBack}}
}

// HandleBack re-presents the previously stored category menu.
func (e *Engine) HandleBack(userID int64) []domain.Reply {
	defer e.lockUser(userID)()

	sess, ok := e.store.Get(userID)
	if !ok || len(sess.Categories) == 0 {
		return []domain.Reply{domain.Message(textSessionExpired)}
	}

	sess.State = domain.StateCategoryMenu
	if len(sess.Categories) == 1 {
		// Nothing to go back to; the attached menu still offers reset.
		return []domain.Reply{{Text: textOnlyOneCategory, Menu: domain.MenuCategories, Categories: sess.Categories}}
	}
	return []domain.Reply{{Text: textPickCategory, Menu: domain.MenuCategories, Categories: sess.Categories}}
}

// HandleDirectRecipe serves an explicit "дай рецепт X" request. It
// bypasses the ingredient pipeline entirely and touches nothing in the
// session except the transient recipe-sent mark.
func (e *Engine) HandleDirectRecipe(ctx context.Context, userID int64, dishName string, p domain.Progress) []domain.Reply {
	defer e.lockUser(userID)()

	end := p.Begin(ctx, fmt.Sprintf("⚡️ Ищу: <b>%s</b>...", dishName))
	recipe := e.ai.WriteRecipeDirect(ctx, dishName)
	end()

	if recipe == "" {
		return []domain.Reply{domain.Message(textGenerationFailed)}
	}

	sess := e.store.GetOrCreate(userID)
	sess.State = domain.StateRecipeSent
	e.log.Infof("user %d got direct recipe for %q", userID, dishName)
	return []domain.Reply{{Text: recipe, Menu: domain.MenuHide}}
}

// categoryFlow re-infers categories from the full ingredient set and
// either presents the category menu or, with exactly one category,
// advances straight to the dish menu.
func (e *Engine) categoryFlow(ctx context.Context, sess *domain.Session, style domain.Style, p domain.Progress) []domain.Reply {
	end := p.Begin(ctx, waitAnalyzing)
	cats := e.ai.InferCategories(ctx, sess.Ingredients)
	end()

	if len(cats) == 0 {
		return []domain.Reply{domain.Message(textHardToCook)}
	}

	// Any prior dish offer is derived from an older ingredient set now.
	sess.Categories = cats
	sess.Dishes = nil
	sess.State = domain.StateCategoryMenu

	if len(cats) == 1 {
		return e.dishFlow(ctx, sess, cats[0], style, p)
	}
	return []domain.Reply{{Text: textWhatToCook, Menu: domain.MenuCategories, Categories: cats}}
}

// dishFlow generates and presents the dish menu for one category.
func (e *Engine) dishFlow(ctx context.Context, sess *domain.Session, category domain.Category, style domain.Style, p domain.Progress) []domain.Reply {
	title := category.Title()

	end := p.Begin(ctx, fmt.Sprintf("🍳 Придумываю %s...", title))
	dishes := e.ai.ListDishes(ctx, sess.Ingredients, category, style)
	end()

	if len(dishes) == 0 {
		// Stay in the pre-dish state so the user can retry or add more.
		return []domain.Reply{domain.Message(textNoDishes)}
	}

	sess.Dishes = dishes
	sess.State = domain.StateDishMenu

	var b strings.Builder
	fmt.Fprintf(&b, "🍽 <b>Меню: %s</b>\n\n", title)
	for _, d := range dishes {
		fmt.Fprintf(&b, "🔸 <b>%s</b>\n<i>%s</i>\n\n", d.Name, d.Description)
	}
	menuText := strings.TrimRight(b.String(), "\n")

	sess.AddMessage(domain.RoleBot, menuText, e.maxHistory)
	return []domain.Reply{{Text: menuText, Menu: domain.MenuDishes, Dishes: dishes}}
}

// isThanks matches the closing courtesy phrases.
func isThanks(text string) bool {
	_, ok := thanksWords[strings.Trim(strings.ToLower(text), " .!")]
	return ok
}
