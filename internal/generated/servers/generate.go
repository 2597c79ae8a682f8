// Package servers holds the HTTP contract of the restaurant API: request and response
// types, the ServerInterface implemented by the inbound adapter, the echo routing
// wrapper and the embedded OpenAPI document.
//
// types.go and server.go are produced from openapi.yaml; edit the document and run
// go generate ./internal/generated/... instead of changing them by hand.
package servers

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 --config=types.cfg.yaml openapi.yaml
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 --config=server.cfg.yaml openapi.yaml
