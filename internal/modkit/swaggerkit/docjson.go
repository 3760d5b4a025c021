// Package swaggerkit serves the embedded OpenAPI document and the swagger UI
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
)

// SpecMutator lets modules tweak the parsed spec before it is served
type SpecMutator func(map[string]any)

var (
	mu       sync.Mutex
	mutators []SpecMutator
	secured  = map[string]map[string]struct{}{}
)

// Register adds a spec mutator
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// MarkSecure records that method on the absolute route path requires a bearer token
func MarkSecure(path, method string) {
	mu.Lock()
	defer mu.Unlock()
	m, ok := secured[path]
	if !ok {
		m = map[string]struct{}{}
		secured[path] = m
	}
	m[strings.ToLower(method)] = struct{}{}
}

// reset clears registries between tests
func reset() {
	mu.Lock()
	mutators = nil
	secured = map[string]map[string]struct{}{}
	mu.Unlock()
}

// Document decorates raw with the server url, shared error responses and security marks
func Document(raw []byte, serverURL string) ([]byte, error) {
	var spec map[string]any
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, err
	}

	ensureServers(spec, serverURL)
	ensureErrorSchema(spec)
	addDefaultResponse(spec, "500", "Internal Server Error", map[string]any{
		"success": false,
		"message": "Internal server error",
	})
	addDefaultResponse(spec, "400", "Bad Request", map[string]any{
		"success": false,
		"message": "Validation failed",
		"errors":  []any{map[string]any{"field": "email", "message": "Please provide a valid email address"}},
	})
	applySecurity(spec, serverURL)

	mu.Lock()
	ms := append([]SpecMutator(nil), mutators...)
	mu.Unlock()
	for _, m := range ms {
		m(spec)
	}
	return json.Marshal(spec)
}

func serveDocJSON(raw []byte, serverURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out, err := Document(raw, serverURL)
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(out)
	}
}

// ensureServers makes sure the spec is OAS 3.0 with a servers array
// swagger ui cannot render 3.1 yet, so it is downsampled
func ensureServers(spec map[string]any, url string) {
	if _, hasSwagger := spec["swagger"]; hasSwagger {
		delete(spec, "swagger")
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

func components(spec map[string]any, key string) map[string]any {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	sub, ok := comps[key].(map[string]any)
	if !ok {
		sub = map[string]any{}
		comps[key] = sub
	}
	return sub
}

// ensureErrorSchema adds the failure envelope the api writes when the document lacks it
func ensureErrorSchema(spec map[string]any) {
	schemas := components(spec, "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Failure envelope",
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean"},
			"message": map[string]any{"type": "string"},
			"errors": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"field":   map[string]any{"type": "string"},
						"message": map[string]any{"type": "string"},
					},
				},
			},
			"error": map[string]any{"type": "string"},
		},
		"required": []any{"success", "message"},
	}
}

func eachOperation(spec map[string]any, fn func(path, method string, op map[string]any)) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for p, node := range paths {
		methods, ok := node.(map[string]any)
		if !ok {
			continue
		}
		for m, opAny := range methods {
			if op, ok := opAny.(map[string]any); ok {
				fn(p, m, op)
			}
		}
	}
}

// addDefaultResponse injects status into every operation that does not document it
func addDefaultResponse(spec map[string]any, status, desc string, example map[string]any) {
	resp := map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
	eachOperation(spec, func(_, _ string, op map[string]any) {
		responses, ok := op["responses"].(map[string]any)
		if !ok {
			responses = map[string]any{}
			op["responses"] = responses
		}
		if _, exists := responses[status]; !exists {
			responses[status] = resp
		}
	})
}

// applySecurity tags operations registered through a protected group
func applySecurity(spec map[string]any, serverURL string) {
	mu.Lock()
	marks := make(map[string]map[string]struct{}, len(secured))
	for p, ms := range secured {
		marks[strings.TrimPrefix(p, strings.TrimSuffix(serverURL, "/"))] = ms
	}
	mu.Unlock()
	if len(marks) == 0 {
		return
	}

	components(spec, "securitySchemes")["bearerAuth"] = map[string]any{
		"type":         "http",
		"scheme":       "bearer",
		"bearerFormat": "JWT",
	}
	eachOperation(spec, func(path, method string, op map[string]any) {
		if _, ok := marks[path][method]; ok {
			op["security"] = []any{map[string]any{"bearerAuth": []any{}}}
		}
	})
}
