package validation_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tienda/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorsResponse struct {
	Errors []validation.FieldError `json:"errors"`
}

func newTestApp() *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	app.Get("/items/:id", validation.Validate(
		validation.Param("id").IsInt().WithMessage("bad id"),
	), ok)
	app.Post("/items", validation.Validate(
		validation.Body("name").NotEmpty().WithMessage("name empty"),
		validation.Body("price").
			IsNumeric().WithMessage("price not numeric").
			NotEmpty().WithMessage("price empty").
			Custom(validation.IsPositiveAt(2)).WithMessage("price not positive"),
		validation.Body("availability").IsBoolean(),
	), func(c *fiber.Ctx) error {
		body, err := validation.RequestBody(c)
		if err != nil {
			return err
		}
		return c.JSON(body)
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, errorsResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out errorsResponse
	if resp.StatusCode == http.StatusBadRequest {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func messages(r errorsResponse) []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Msg)
	}
	return msgs
}

func TestValidate_Param(t *testing.T) {
	app := newTestApp()

	for _, id := range []string{"1", "0", "-3", "+7", "10000", "01", "007"} {
		status, _ := do(t, app, http.MethodGet, "/items/"+id, "")
		assert.Equal(t, http.StatusOK, status, id)
	}

	for _, id := range []string{"not-valid-url", "1.5", "1e3", "0x1"} {
		status, resp := do(t, app, http.MethodGet, "/items/"+id, "")
		assert.Equal(t, http.StatusBadRequest, status, id)
		require.Len(t, resp.Errors, 1, id)
		assert.Equal(t, "bad id", resp.Errors[0].Msg)
		assert.Equal(t, "id", resp.Errors[0].Path)
		assert.Equal(t, validation.LocationParams, resp.Errors[0].Location)
		assert.Equal(t, id, resp.Errors[0].Value)
	}
}

func TestValidate_BodyErrorsKeepDeclarationOrder(t *testing.T) {
	app := newTestApp()

	status, resp := do(t, app, http.MethodPost, "/items", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{
		"name empty",
		"price not numeric",
		"price empty",
		"price not positive",
		"Invalid value",
	}, messages(resp))
}

func TestValidate_BodyCases(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"zero price", `{"name":"Monitor","price":0,"availability":true}`, []string{"price not positive"}},
		{"text price", `{"name":"Monitor","price":"hola","availability":true}`, []string{"price not numeric", "price not positive"}},
		{"negative price", `{"name":"Monitor","price":-4,"availability":true}`, []string{"price not positive"}},
		{"null price", `{"name":"Monitor","price":null,"availability":true}`, []string{"price not numeric", "price empty", "price not positive"}},
		{"empty name", `{"name":"","price":10,"availability":true}`, []string{"name empty"}},
		{"string availability", `{"name":"Monitor","price":10,"availability":"yes"}`, []string{"Invalid value"}},
		{"numeric string price", `{"name":"Monitor","price":"10.5","availability":"1"}`, nil},
		{"sub-cent price", `{"name":"Monitor","price":0.001,"availability":true}`, []string{"price not positive"}},
		{"sub-cent string price", `{"name":"Monitor","price":"0.004","availability":true}`, []string{"price not positive"}},
		{"half cent rounds up", `{"name":"Monitor","price":0.005,"availability":true}`, nil},
		{"exponent price", `{"name":"Monitor","price":1e2,"availability":true}`, nil},
		{"valid", `{"name":"Monitor","price":99.99,"availability":false}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := do(t, app, http.MethodPost, "/items", tt.body)
			if tt.want == nil {
				assert.Equal(t, http.StatusOK, status)
				return
			}
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.want, messages(resp))
		})
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	app := newTestApp()

	status, resp := do(t, app, http.MethodPost, "/items", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "JSON no valido", resp.Errors[0].Msg)
}

func TestRequestBody_KeepsNumberLiterals(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"Monitor","price":599.99,"availability":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "599.99", string(body["price"]))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", validation.ToString(nil))
	assert.Equal(t, "abc", validation.ToString("abc"))
	assert.Equal(t, "100", validation.ToString(json.Number("100")))
	assert.Equal(t, "100", validation.ToString(json.Number("1e2")))
	assert.Equal(t, "100", validation.ToString(json.Number("100.0")))
	assert.Equal(t, "0", validation.ToString(json.Number("-0")))
	assert.Equal(t, "0.000001", validation.ToString(json.Number("1e-6")))
	assert.Equal(t, "1.5e-7", validation.ToString(json.Number("1.5e-7")))
	assert.Equal(t, "1e+21", validation.ToString(json.Number("1e21")))
	assert.Equal(t, "0.5", validation.ToString(0.5))
	assert.Equal(t, "true", validation.ToString(true))
	assert.Equal(t, `[1,2]`, validation.ToString([]interface{}{1, 2}))
}

func TestToNumber(t *testing.T) {
	assert.True(t, math.IsNaN(validation.ToNumber(nil, false)))
	assert.Equal(t, 0.0, validation.ToNumber(nil, true))
	assert.Equal(t, 1.0, validation.ToNumber(true, true))
	assert.Equal(t, 0.0, validation.ToNumber("  ", true))
	assert.Equal(t, 12.5, validation.ToNumber(" 12.5 ", true))
	assert.True(t, math.IsNaN(validation.ToNumber("hola", true)))
	assert.Equal(t, 3.0, validation.ToNumber(json.Number("3"), true))
}

func TestIsPositiveAt(t *testing.T) {
	positive := validation.IsPositiveAt(2)

	assert.True(t, positive(json.Number("0.01"), true))
	assert.True(t, positive(json.Number("0.005"), true))
	assert.True(t, positive("12.5", true))
	assert.False(t, positive(json.Number("0.001"), true))
	assert.False(t, positive(json.Number("0.004"), true))
	assert.False(t, positive(json.Number("-0.5"), true))
	assert.False(t, positive(nil, true))
	assert.False(t, positive("hola", true))
	assert.False(t, positive(nil, false))
}

func TestIsTruthyFlag(t *testing.T) {
	assert.True(t, validation.IsTruthyFlag(true))
	assert.True(t, validation.IsTruthyFlag("1"))
	assert.True(t, validation.IsTruthyFlag(json.Number("1")))
	assert.False(t, validation.IsTruthyFlag(false))
	assert.False(t, validation.IsTruthyFlag("0"))
}
