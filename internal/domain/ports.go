package domain

import (
	"context"
	"sync"
)

// SessionStore holds per-user conversation state. Implementations must be
// safe for concurrent access across users; mutations within one user are
// serialized by holding the user's lock from UserLock.
type SessionStore interface {
	Get(userID int64) (*Session, bool)
	GetOrCreate(userID int64) *Session
	Clear(userID int64)
	// UserLock returns the mutex guarding all operations for one user.
	// Holding it across backend calls prevents a menu tap from racing a
	// slow transcription for the same user.
	UserLock(userID int64) *sync.Mutex
}

// Gateway is the stateless façade over the AI backend. Every operation
// suspends on network I/O and never fails upward: transport or parse
// problems resolve to the documented safe default of each operation.
type Gateway interface {
	// Transcribe converts spoken audio to text; "" on any failure.
	Transcribe(ctx context.Context, audio []byte) string
	// ValidateFood reports whether free text plausibly names edible
	// ingredients. Unparseable replies count as a rejection.
	ValidateFood(ctx context.Context, text string) bool
	// InferCategories returns category codes from the closed vocabulary.
	// Unparseable output falls back to a single default category; a
	// well-formed empty list is returned as-is.
	InferCategories(ctx context.Context, ingredients string) []Category
	// ListDishes returns dish suggestions for a category; nil on failure.
	ListDishes(ctx context.Context, ingredients string, category Category, style Style) []Dish
	// WriteRecipe produces a full recipe grounded in the ingredient list;
	// "" on failure. Refusals pass through verbatim.
	WriteRecipe(ctx context.Context, dishName, ingredients string) string
	// WriteRecipeDirect produces a recipe from the dish name alone.
	WriteRecipeDirect(ctx context.Context, dishName string) string
	// ClassifyFollowup distinguishes "adding ingredients" from other
	// intents given the last offer shown; FollowupUnclear on failure.
	ClassifyFollowup(ctx context.Context, message, priorOffer string) FollowupIntent
}

// Progress shows a transient "please wait" note around a slow backend
// call. Begin returns the function that removes the note; callers must
// run it even when the call fails.
type Progress interface {
	Begin(ctx context.Context, text string) (end func())
}

// NopProgress is a Progress that shows nothing. Used in tests.
type NopProgress struct{}

func (NopProgress) Begin(context.Context, string) func() { return func() {} }
