// Package docs embeds the OpenAPI document served by the swagger UI
package docs

import _ "embed"

// OpenAPI is the hand maintained document for the /api routes
//
//go:embed openapi.json
var OpenAPI []byte
