// Package docs embeds the OpenAPI document and the Swagger UI page that
// renders it.
package docs

import _ "embed"

// OpenAPI contains the OpenAPI 3.0 document for the product API.
//
//go:embed openapi.json
var OpenAPI []byte

// UI contains the Swagger UI page, which loads its assets from a CDN and
// reads the document from /docs/openapi.json.
//
//go:embed index.html
var UI []byte
