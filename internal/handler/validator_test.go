package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationErrorUsesJSONPaths(t *testing.T) {
	req := RecipeRequest{
		Ingredients: []IngredientRequest{{Name: ""}},
		PrepMinutes: -1,
		SourceURL:   "ftp://example.com",
	}
	err := GetValidator().Struct(req)
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["title"])
	assert.Equal(t, "This field is required", fields["ingredients[0].name"])
	assert.Equal(t, "Must be at least 0", fields["prep_minutes"])
	assert.Equal(t, "Must be an http(s) URL", fields["source_url"])
}

func TestFormatValidationErrorForeignError(t *testing.T) {
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(errors.New("x")))
	assert.Nil(t, FormatValidationError(nil))
}

func TestDecodeAndValidateRequest(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ReviewRequest
		if err := DecodeAndValidateRequest(r, w, &req, "review"); err != nil {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/", "", "{")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
	})

	t.Run("invalid fields", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/", "", `{"rating": 9}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode[ValidationErrorResponse](t, rec)
		assert.Equal(t, ErrMsgInvalidRequestSummary, resp.Error)
		assert.Equal(t, "Must be at most 5", resp.Fields["rating"])
	})

	t.Run("oversized body", func(t *testing.T) {
		body := `{"rating": 5, "comment": "` + strings.Repeat("a", maxBodyBytes) + `"}`
		rec := do(t, h, http.MethodPost, "/", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("valid", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/", "", `{"rating": 4, "comment": "nice"}`)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
