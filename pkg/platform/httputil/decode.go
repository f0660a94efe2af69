package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	dErrors "counsel/pkg/domain-errors"
)

// Validatable requests check and parse their own fields after decoding.
type Validatable interface {
	Validate() error
}

// SchemaProvider requests are checked against a JSON schema before decoding,
// so shape errors (missing fields, wrong types, unknown fields) are reported
// uniformly.
type SchemaProvider interface {
	Schema() *gojsonschema.Schema
}

// MustSchema compiles a JSON schema literal, panicking on a malformed schema.
func MustSchema(literal string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(literal))
	if err != nil {
		panic(fmt.Sprintf("compile json schema: %v", err))
	}
	return schema
}

// ValidateSchema reports the first few schema violations as a bad request.
func ValidateSchema(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body")
	}
	if result.Valid() {
		return nil
	}
	const maxReported = 3
	msgs := make([]string, 0, maxReported)
	for i, desc := range result.Errors() {
		if i == maxReported {
			break
		}
		msgs = append(msgs, desc.String())
	}
	return dErrors.New(dErrors.CodeBadRequest, strings.Join(msgs, "; "))
}

// DecodeAndPrepare reads, schema-checks, decodes and validates a request body
// into T. On failure it writes the error response and returns false.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *zap.Logger, requestID string) (*T, bool) {
	body, err := ReadBody(r)
	if err != nil {
		WriteError(w, err)
		return nil, false
	}

	req := new(T)
	if sp, ok := any(req).(SchemaProvider); ok {
		if err := ValidateSchema(sp.Schema(), body); err != nil {
			logger.Warn("request body failed schema validation",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			WriteError(w, err)
			return nil, false
		}
	}

	if err := json.Unmarshal(body, req); err != nil {
		WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body"))
		return nil, false
	}

	if v, ok := any(req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			logger.Warn("request validation failed",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			WriteError(w, err)
			return nil, false
		}
	}
	return req, true
}
