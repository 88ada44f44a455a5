// Package display builds the choice menus offered to the user and owns
// the callback token encoding. Everything here is a pure function of data
// already in the session; the transport renders the result.
package display

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/inikonoff/fridgechef/internal/domain"
)

// ErrBadToken reports a callback payload that does not decode to any
// known choice token (e.g. a button from a long-dead session).
var ErrBadToken = errors.New("display: unrecognized callback token")

// TokenKind enumerates the callback token families.
type TokenKind int

const (
	TokenStyle TokenKind = iota
	TokenCategory
	TokenDish
	TokenBack
	TokenRestart
	TokenDelete
)

// Fixed token literals and prefixes. These travel inside Telegram
// callback payloads and must round-trip losslessly.
const (
	stylePrefix = "style_"
	catPrefix   = "cat_"
	dishPrefix  = "dish_"
	backToken   = "back_to_categories"
	restartTok  = "restart"
	deleteTok   = "delete_msg"
)

// Token is a decoded menu selection.
type Token struct {
	Kind      TokenKind
	Style     domain.Style    // TokenStyle
	Category  domain.Category // TokenCategory
	DishIndex int             // TokenDish, zero-based into the offered list
}

// Encode serializes the token into its wire form.
func (t Token) Encode() string {
	switch t.Kind {
	case TokenStyle:
		return stylePrefix + string(t.Style)
	case TokenCategory:
		return catPrefix + string(t.Category)
	case TokenDish:
		return dishPrefix + strconv.Itoa(t.DishIndex)
	case TokenBack:
		return backToken
	case TokenRestart:
		return restartTok
	case TokenDelete:
		return deleteTok
	default:
		return ""
	}
}

// ParseToken decodes a callback payload. The category code is validated
// against the closed vocabulary and the dish index must be a non-negative
// integer; whether the index is still live is the orchestrator's call.
func ParseToken(data string) (Token, error) {
	switch data {
	case backToken:
		return Token{Kind: TokenBack}, nil
	case restartTok:
		return Token{Kind: TokenRestart}, nil
	case deleteTok:
		return Token{Kind: TokenDelete}, nil
	}

	if rest, ok := strings.CutPrefix(data, stylePrefix); ok {
		switch domain.Style(rest) {
		case domain.StyleOrdinary, domain.StyleExotic:
			return Token{Kind: TokenStyle, Style: domain.Style(rest)}, nil
		}
		return Token{}, fmt.Errorf("%w: style %q", ErrBadToken, rest)
	}

	if rest, ok := strings.CutPrefix(data, catPrefix); ok {
		cat, ok := domain.ParseCategory(rest)
		if !ok {
			return Token{}, fmt.Errorf("%w: category %q", ErrBadToken, rest)
		}
		return Token{Kind: TokenCategory, Category: cat}, nil
	}

	if rest, ok := strings.CutPrefix(data, dishPrefix); ok {
		idx, err := strconv.Atoi(rest)
		if err != nil || idx < 0 {
			return Token{}, fmt.Errorf("%w: dish index %q", ErrBadToken, rest)
		}
		return Token{Kind: TokenDish, DishIndex: idx}, nil
	}

	return Token{}, fmt.Errorf("%w: %q", ErrBadToken, data)
}
