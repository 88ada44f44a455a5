package yandex

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"bare array",
			`["soup", "main"]`,
			`["soup", "main"]`,
		},
		{
			"json fence",
			"```json\n[\"soup\"]\n```",
			`["soup"]`,
		},
		{
			"plain fence",
			"```\n{\"intent\": \"add_products\"}\n```",
			`{"intent": "add_products"}`,
		},
		{
			"surrounding prose",
			"Вот категории: [\"salad\", \"snack\"] — удачи!",
			`["salad", "snack"]`,
		},
		{
			"object with nested brackets",
			`ответ {"intent": "select_dish", "dish_name": "Борщ"} конец`,
			`{"intent": "select_dish", "dish_name": "Борщ"}`,
		},
		{
			"truncated output keeps tail",
			`[{"name": "Плов", "desc": "рис и`,
			`[{"name": "Плов", "desc": "рис и`,
		},
		{
			"no json at all",
			"просто текст",
			"просто текст",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.in); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n[1]\n```", "[1]"},
		{"```\n[1]\n```", "[1]"},
		{"  [1]  ", "[1]"},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 120); got != "short" {
		t.Errorf("truncate left %q", got)
	}
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	got := truncate(string(long), 120)
	if len(got) != 120 || got[117:] != "..." {
		t.Errorf("truncate(200 chars, 120) = %d chars ending %q", len(got), got[117:])
	}
}
