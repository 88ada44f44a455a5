package yandex

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inikonoff/fridgechef/internal/domain"
)

// Compile-time interface check.
var _ domain.Gateway = (*Gateway)(nil)

// Sampling temperatures per operation. Validation and intent
// classification lean deterministic; dish and recipe generation get more
// room for variety.
const (
	tempValidate   = 0.1
	tempCategories = 0.3
	tempDishes     = 0.5
	tempRecipe     = 0.4
	tempFreestyle  = 0.6
	tempFollowup   = 0.1
)

// courtesyLine closes every successfully generated recipe.
const courtesyLine = "\n\n👨‍🍳 <b>Приятного аппетита!</b>"

// Gateway implements domain.Gateway on top of the raw Client. It holds
// no session state and is safe to call concurrently for different users.
// Every operation resolves failures to its documented default instead of
// returning an error.
type Gateway struct {
	client *Client
	log    *zap.SugaredLogger
}

// NewGateway creates the inference gateway.
func NewGateway(client *Client, log *zap.SugaredLogger) *Gateway {
	return &Gateway{client: client, log: log}
}

// Transcribe converts voice audio to text; "" on any failure.
func (g *Gateway) Transcribe(ctx context.Context, audio []byte) string {
	text, err := g.client.Transcribe(ctx, audio)
	if err != nil {
		g.log.Errorf("transcribe: %v", err)
		return ""
	}
	return strings.TrimSpace(text)
}

// ValidateFood asks the model whether free text names edible ingredients.
// The reply is expected to contain the affirmative token "true"; anything
// else — including unparseable output — counts as a rejection.
func (g *Gateway) ValidateFood(ctx context.Context, text string) bool {
	raw, err := g.client.Complete(ctx, promptValidate, fmt.Sprintf("Анализируй: %q", text), tempValidate)
	if err != nil {
		g.log.Errorf("validate food: %v", err)
		return false
	}
	return strings.Contains(strings.ToLower(raw), "true")
}

// InferCategories returns the meal categories realistically cookable from
// the ingredients, restricted to the closed vocabulary. Unparseable
// output falls back to a single default category so the conversation
// never dead-ends; a well-formed empty list is returned as-is.
func (g *Gateway) InferCategories(ctx context.Context, ingredients string) []domain.Category {
	fallback := []domain.Category{domain.CategoryMain}

	raw, err := g.client.Complete(ctx, categoriesPrompt(ingredients), "Анализируй категории", tempCategories)
	if err != nil {
		g.log.Errorf("infer categories: %v", err)
		return fallback
	}

	var codes []string
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &codes); err != nil {
		g.log.Warnf("infer categories: unparseable reply: %v (raw: %s)", err, truncate(raw, 120))
		return fallback
	}

	cats := make([]domain.Category, 0, len(codes))
	for _, code := range codes {
		c, ok := domain.ParseCategory(strings.TrimSpace(code))
		if !ok {
			g.log.Warnf("infer categories: dropping unknown code %q", code)
			continue
		}
		cats = append(cats, c)
	}
	if len(cats) == 0 && len(codes) > 0 {
		// The model answered entirely outside the vocabulary.
		return fallback
	}
	return cats
}

// ListDishes asks for dish suggestions in a category; nil on failure.
func (g *Gateway) ListDishes(ctx context.Context, ingredients string, category domain.Category, style domain.Style) []domain.Dish {
	raw, err := g.client.Complete(ctx, dishesPrompt(ingredients, category, style), "Предложи меню JSON", tempDishes)
	if err != nil {
		g.log.Errorf("list dishes: %v", err)
		return nil
	}

	var dishes []domain.Dish
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &dishes); err != nil {
		g.log.Warnf("list dishes: unparseable reply: %v (raw: %s)", err, truncate(raw, 120))
		return nil
	}
	return dishes
}

// WriteRecipe produces a full recipe grounded in the ingredient list.
// Returns "" on failure. A content-policy refusal passes through verbatim
// with no courtesy line.
func (g *Gateway) WriteRecipe(ctx context.Context, dishName, ingredients string) string {
	raw, err := g.client.Complete(ctx, recipePrompt(dishName, ingredients), "Напиши рецепт с советом", tempRecipe)
	if err != nil {
		g.log.Errorf("write recipe: %v", err)
		return ""
	}
	if raw == "" {
		return ""
	}
	if isRefusal(raw) {
		return raw
	}
	return raw + courtesyLine
}

// WriteRecipeDirect produces a recipe from the dish name alone, without
// ingredient grounding.
func (g *Gateway) WriteRecipeDirect(ctx context.Context, dishName string) string {
	raw, err := g.client.Complete(ctx, freestyleRecipePrompt(dishName), "Напиши рецепт", tempFreestyle)
	if err != nil {
		g.log.Errorf("write recipe (direct): %v", err)
		return ""
	}
	if raw == "" {
		return ""
	}
	if isRefusal(raw) {
		return raw
	}
	return raw + courtesyLine
}

type followupResponse struct {
	Intent   string `json:"intent"`
	Products string `json:"products"`
	DishName string `json:"dish_name"`
}

// ClassifyFollowup distinguishes "user is adding more ingredients" from
// other intents, given the last offer shown to them.
func (g *Gateway) ClassifyFollowup(ctx context.Context, userMessage, priorOffer string) domain.FollowupIntent {
	raw, err := g.client.Complete(ctx, followupPrompt(userMessage, priorOffer), "Анализируй", tempFollowup)
	if err != nil {
		g.log.Errorf("classify followup: %v", err)
		return domain.FollowupUnclear
	}

	var resp followupResponse
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &resp); err != nil {
		g.log.Warnf("classify followup: unparseable reply: %v (raw: %s)", err, truncate(raw, 120))
		return domain.FollowupUnclear
	}

	switch domain.FollowupIntent(resp.Intent) {
	case domain.FollowupAddProducts:
		return domain.FollowupAddProducts
	case domain.FollowupSelectDish:
		return domain.FollowupSelectDish
	default:
		return domain.FollowupUnclear
	}
}
