// Package schemas exposes the embedded OpenAPI document for the repofit API.
package schemas

import _ "embed"

// OpenAPISpec is the raw YAML OpenAPI document used by the request
// validation middleware.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
