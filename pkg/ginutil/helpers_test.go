package ginutil

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name  string
		query string
		key   string
		def   int
		want  int
	}{
		{"present", "page=3", "page", 0, 3},
		{"missing", "", "page", 7, 7},
		{"not a number", "page=abc", "page", 7, 7},
		{"negative allowed", "page=-2", "page", 0, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QueryInt(testContext(tt.query), tt.key, tt.def); got != tt.want {
				t.Errorf("QueryInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParamUint64(t *testing.T) {
	c := testContext("")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := ParamUint64(c, "id")
	if err != nil || id != 42 {
		t.Errorf("ParamUint64() = (%d, %v), want (42, nil)", id, err)
	}

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	if _, err := ParamUint64(c, "id"); err == nil {
		t.Error("ParamUint64() expected error for non-numeric value")
	}
}

func TestPage(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		defLimit  int
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 5, 1, 5},
		{"explicit", "page=2&limit=10", 5, 2, 10},
		{"zero page clamped", "page=0", 5, 1, 5},
		{"negative limit clamped", "limit=-3", 5, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := Page(testContext(tt.query), tt.defLimit)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("Page() = (%d, %d), want (%d, %d)", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}
