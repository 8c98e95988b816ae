package backend

import (
	"context"
	"net/http"
)

type queryRequest struct {
	Query string `json:"query"`
}

// Query posts the question to the query endpoint. Both parsed_query and
// results must be present in the answer.
func (h *HTTP) Query(ctx context.Context, token, query string) (*QueryResponse, error) {
	var out QueryResponse
	if err := h.do(ctx, http.MethodPost, h.endpoints.Query, token, queryRequest{Query: query}, &out); err != nil {
		return nil, err
	}
	if out.ParsedQuery == nil {
		return nil, &DecodeError{Endpoint: h.endpoints.Query, Reason: "missing parsed_query"}
	}
	if out.Results == nil {
		return nil, &DecodeError{Endpoint: h.endpoints.Query, Reason: "missing results"}
	}
	return &out, nil
}

// Explain posts the question to the explain endpoint.
func (h *HTTP) Explain(ctx context.Context, token, query string) (*Explanation, error) {
	var env explainEnvelope
	if err := h.do(ctx, http.MethodPost, h.endpoints.Explain, token, queryRequest{Query: query}, &env); err != nil {
		return nil, err
	}
	e, ok := env.unwrap()
	if !ok {
		return nil, &DecodeError{Endpoint: h.endpoints.Explain, Reason: "missing explanation"}
	}
	return e, nil
}

// Validate posts the question to the validate endpoint.
func (h *HTTP) Validate(ctx context.Context, token, query string) (*Validation, error) {
	var env validateEnvelope
	if err := h.do(ctx, http.MethodPost, h.endpoints.Validate, token, queryRequest{Query: query}, &env); err != nil {
		return nil, err
	}
	v, ok := env.unwrap()
	if !ok {
		return nil, &DecodeError{Endpoint: h.endpoints.Validate, Reason: "missing validation"}
	}
	return v, nil
}
