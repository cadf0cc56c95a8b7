// Package validation runs declarative per-field rule chains against the
// route parameters and JSON body of a request before its handler executes.
package validation

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

const bodyLocalsKey = "validation.body"

// FieldError describes one failed check.
type FieldError struct {
	Type     string      `json:"type"`
	Value    interface{} `json:"value,omitempty"`
	Msg      string      `json:"msg"`
	Path     string      `json:"path"`
	Location Location    `json:"location"`
}

type request struct {
	params map[string]string
	body   map[string]interface{}
}

func (r request) lookup(loc Location, field string) (interface{}, bool) {
	switch loc {
	case LocationParams:
		v, ok := r.params[field]
		return v, ok
	case LocationBody:
		v, ok := r.body[field]
		return v, ok
	}
	return nil, false
}

// Validate returns a handler that evaluates every check of every chain in
// declaration order. When any check fails it responds 400 with the full error
// list; otherwise the next handler runs.
func Validate(chains ...*Chain) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := RequestBody(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": []FieldError{{Type: "field", Msg: "JSON no valido", Location: LocationBody}},
			})
		}

		req := request{params: c.AllParams(), body: body}
		errs := []FieldError{}
		for _, chain := range chains {
			errs = append(errs, chain.run(req)...)
		}
		if len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}
		return c.Next()
	}
}

// RequestBody decodes the JSON object in the request body once per request
// and caches it. An empty body, or a body that is not a JSON object, decodes
// to an empty map.
func RequestBody(c *fiber.Ctx) (map[string]interface{}, error) {
	if cached, ok := c.Locals(bodyLocalsKey).(map[string]interface{}); ok {
		return cached, nil
	}

	body := map[string]interface{}{}
	raw := bytes.TrimSpace(c.Body())
	if len(raw) > 0 && c.Is("json") {
		var decoded interface{}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			return nil, err
		}
		if obj, ok := decoded.(map[string]interface{}); ok {
			body = obj
		}
	}
	c.Locals(bodyLocalsKey, body)
	return body, nil
}
