package yandex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/inikonoff/fridgechef/internal/domain"
)

// completionServer fakes the Foundation Models endpoint, answering every
// request with the given model text.
func completionServer(t *testing.T, modelText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Api-Key test-key" {
			t.Errorf("Authorization header = %q", got)
		}
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		resp := map[string]any{
			"result": map[string]any{
				"alternatives": []map[string]any{
					{"message": map[string]any{"role": "assistant", "text": modelText}},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
}

func newTestGateway(t *testing.T, srv *httptest.Server) *Gateway {
	t.Helper()
	client := NewClient("test-key", "test-folder", zap.NewNop().Sugar(),
		WithGPTEndpoint(srv.URL),
		WithSTTEndpoint(srv.URL),
	)
	return NewGateway(client, zap.NewNop().Sugar())
}

func TestValidateFood(t *testing.T) {
	tests := []struct {
		name      string
		modelText string
		want      bool
	}{
		{"affirmative", "true", true},
		{"affirmative with prose", "Ответ: TRUE, это продукты.", true},
		{"negative", "false", false},
		{"garbage", "не могу определить", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := completionServer(t, tt.modelText)
			defer srv.Close()
			g := newTestGateway(t, srv)

			if got := g.ValidateFood(context.Background(), "курица, рис"); got != tt.want {
				t.Errorf("ValidateFood() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateFoodTransportFailure(t *testing.T) {
	srv := failingServer(t)
	defer srv.Close()
	g := newTestGateway(t, srv)

	if g.ValidateFood(context.Background(), "курица") {
		t.Error("transport failure validated as food")
	}
}

func TestInferCategories(t *testing.T) {
	tests := []struct {
		name      string
		modelText string
		want      []domain.Category
	}{
		{
			"clean list",
			`["soup", "main"]`,
			[]domain.Category{domain.CategorySoup, domain.CategoryMain},
		},
		{
			"fenced with unknown code filtered",
			"```json\n[\"salad\", \"pizza\", \"drink\"]\n```",
			[]domain.Category{domain.CategorySalad, domain.CategoryDrink},
		},
		{
			"unparseable falls back",
			"сложно сказать",
			[]domain.Category{domain.CategoryMain},
		},
		{
			"all unknown falls back",
			`["pizza", "sushi"]`,
			[]domain.Category{domain.CategoryMain},
		},
		{
			"well-formed empty list stays empty",
			`[]`,
			[]domain.Category{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := completionServer(t, tt.modelText)
			defer srv.Close()
			g := newTestGateway(t, srv)

			got := g.InferCategories(context.Background(), "курица, рис")
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("category[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestInferCategoriesTransportFailure(t *testing.T) {
	srv := failingServer(t)
	defer srv.Close()
	g := newTestGateway(t, srv)

	got := g.InferCategories(context.Background(), "курица")
	if len(got) != 1 || got[0] != domain.CategoryMain {
		t.Errorf("got %v, want the default category", got)
	}
}

func TestListDishes(t *testing.T) {
	srv := completionServer(t, "```json\n[{\"name\": \"Борщ\", \"desc\": \"классика\"}, {\"name\": \"Плов\", \"desc\": \"с курицей\"}]\n```")
	defer srv.Close()
	g := newTestGateway(t, srv)

	dishes := g.ListDishes(context.Background(), "курица, рис", domain.CategoryMain, domain.StyleOrdinary)
	if len(dishes) != 2 {
		t.Fatalf("got %d dishes, want 2", len(dishes))
	}
	if dishes[0].Name != "Борщ" || dishes[0].Description != "классика" {
		t.Errorf("dishes[0] = %+v", dishes[0])
	}
}

func TestListDishesUnparseable(t *testing.T) {
	srv := completionServer(t, "вот меню: борщ и плов")
	defer srv.Close()
	g := newTestGateway(t, srv)

	if dishes := g.ListDishes(context.Background(), "курица", domain.CategoryMain, domain.StyleDefault); dishes != nil {
		t.Errorf("got %v, want nil", dishes)
	}
}

func TestWriteRecipeAppendsCourtesy(t *testing.T) {
	srv := completionServer(t, "🍲 <b>Борщ</b>\n\n1. Сварить бульон.")
	defer srv.Close()
	g := newTestGateway(t, srv)

	recipe := g.WriteRecipe(context.Background(), "Борщ", "свекла, капуста")
	if !strings.HasSuffix(recipe, courtesyLine) {
		t.Errorf("recipe missing courtesy line: %q", recipe)
	}
	if !strings.HasPrefix(recipe, "🍲 <b>Борщ</b>") {
		t.Errorf("recipe body mangled: %q", recipe)
	}
}

func TestWriteRecipeRefusalPassesThrough(t *testing.T) {
	refusal := "⛔ Я не могу дать рецепт этого блюда."
	srv := completionServer(t, refusal)
	defer srv.Close()
	g := newTestGateway(t, srv)

	recipe := g.WriteRecipe(context.Background(), "что-то", "что-то")
	if recipe != refusal {
		t.Errorf("got %q, want the refusal verbatim", recipe)
	}
}

func TestWriteRecipeFailure(t *testing.T) {
	srv := failingServer(t)
	defer srv.Close()
	g := newTestGateway(t, srv)

	if got := g.WriteRecipe(context.Background(), "Борщ", "свекла"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := g.WriteRecipeDirect(context.Background(), "Борщ"); got != "" {
		t.Errorf("direct: got %q, want empty", got)
	}
}

func TestClassifyFollowup(t *testing.T) {
	tests := []struct {
		name      string
		modelText string
		want      domain.FollowupIntent
	}{
		{"add products", `{"intent": "add_products", "products": "сыр"}`, domain.FollowupAddProducts},
		{"select dish", `{"intent": "select_dish", "dish_name": "Борщ"}`, domain.FollowupSelectDish},
		{"unknown intent", `{"intent": "weather"}`, domain.FollowupUnclear},
		{"unparseable", "хм", domain.FollowupUnclear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := completionServer(t, tt.modelText)
			defer srv.Close()
			g := newTestGateway(t, srv)

			got := g.ClassifyFollowup(context.Background(), "ещё сыр", "меню")
			if got != tt.want {
				t.Errorf("ClassifyFollowup() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lang") != "ru-RU" || q.Get("format") != "oggopus" {
			t.Errorf("stt query = %v", q)
		}
		json.NewEncoder(w).Encode(map[string]string{"result": " курица и рис "})
	}))
	defer srv.Close()
	g := newTestGateway(t, srv)

	if got := g.Transcribe(context.Background(), []byte("ogg")); got != "курица и рис" {
		t.Errorf("Transcribe() = %q", got)
	}
}

func TestTranscribeFailure(t *testing.T) {
	srv := failingServer(t)
	defer srv.Close()
	g := newTestGateway(t, srv)

	if got := g.Transcribe(context.Background(), []byte("ogg")); got != "" {
		t.Errorf("Transcribe() = %q, want empty", got)
	}
}
