package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		url    string
		header string
		want   string
	}{
		{name: "default", url: "/", want: LocaleEnUS},
		{name: "query wins", url: "/?lang=zh", header: "th-TH", want: LocaleZhCN},
		{name: "header", url: "/", header: "fr-FR,th;q=0.8", want: LocaleThTH},
		{name: "unsupported query", url: "/?lang=fr", header: "zh-CN", want: LocaleZhCN},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tc.url, nil)
			if tc.header != "" {
				c.Request.Header.Set("Accept-Language", tc.header)
			}
			if got := ResolveLocale(c); got != tc.want {
				t.Fatalf("ResolveLocale() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestTranslateFallback(t *testing.T) {
	if got := T(LocaleZhCN, "error.item_not_found"); got != "商品不存在" {
		t.Fatalf("unexpected zh message: %s", got)
	}
	if got := T("xx", "error.item_not_found"); got != "Item not found" {
		t.Fatalf("unexpected fallback message: %s", got)
	}
	if got := T(LocaleEnUS, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("missing key should echo, got %s", got)
	}
	if got := Sprintf(LocaleEnUS, "error.password_min_length", 8); got != "Password must be at least 8 characters" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for locale, catalog := range catalogs {
		for key := range enUS {
			if _, ok := catalog[key]; !ok {
				t.Fatalf("%s missing key %s", locale, key)
			}
		}
	}
}
