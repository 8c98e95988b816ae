package backend

import "encoding/json"

// ParsedQuery is the backend's interpretation of a natural-language question.
type ParsedQuery struct {
	SQL        string   `json:"sql"`
	Entity     string   `json:"entity,omitempty"`
	Operation  string   `json:"operation,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
}

// Results carries the outcome of executing the generated SQL.
// Data is kept raw so the renderer can preserve column order.
type Results struct {
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// QueryResponse is the body of a successful POST /query.
type QueryResponse struct {
	Query       string       `json:"query"`
	ParsedQuery *ParsedQuery `json:"parsed_query"`
	Results     *Results     `json:"results"`
}

// Explanation is a human-readable description of a query.
type Explanation struct {
	Summary string   `json:"summary"`
	Details []string `json:"details"`
	SQL     string   `json:"sql,omitempty"`
}

// Validation is the verdict on whether a query can be executed.
// Message is set when Valid is true, Error otherwise.
type Validation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Text returns Message for a valid query and Error for an invalid one.
func (v Validation) Text() string {
	if v.Valid {
		return v.Message
	}
	return v.Error
}

// VerifyResponse is the body of a successful GET /auth/verify.
type VerifyResponse struct {
	User          string `json:"user"`
	Authenticated bool   `json:"authenticated"`
}

// explainEnvelope accepts both {"explanation":{"explanation":{...}}} and
// the flatter {"explanation":{"summary":...}}.
type explainEnvelope struct {
	Explanation *struct {
		Inner   *Explanation `json:"explanation"`
		Summary *string      `json:"summary"`
		Details []string     `json:"details"`
		SQL     string       `json:"sql"`
	} `json:"explanation"`
}

func (e explainEnvelope) unwrap() (*Explanation, bool) {
	if e.Explanation == nil {
		return nil, false
	}
	if e.Explanation.Inner != nil {
		return e.Explanation.Inner, true
	}
	if e.Explanation.Summary != nil {
		return &Explanation{
			Summary: *e.Explanation.Summary,
			Details: e.Explanation.Details,
			SQL:     e.Explanation.SQL,
		}, true
	}
	return nil, false
}

// validateEnvelope accepts both {"validation":{"validation":{...}}} and
// {"validation":{"valid":...}}.
type validateEnvelope struct {
	Validation *struct {
		Inner   *Validation `json:"validation"`
		Valid   *bool       `json:"valid"`
		Message string      `json:"message"`
		Error   string      `json:"error"`
	} `json:"validation"`
}

func (e validateEnvelope) unwrap() (*Validation, bool) {
	if e.Validation == nil {
		return nil, false
	}
	if e.Validation.Inner != nil {
		return e.Validation.Inner, true
	}
	if e.Validation.Valid != nil {
		return &Validation{
			Valid:   *e.Validation.Valid,
			Message: e.Validation.Message,
			Error:   e.Validation.Error,
		}, true
	}
	return nil, false
}
