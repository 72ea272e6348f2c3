package graph

import (
	"log/slog"

	dErrors "github.com/theusc6/global-impact-platform/pkg/domain-errors"
)

// resolverError is what resolvers hand back to the engine. The engine
// copies Extensions into the GraphQL error payload, which is how clients
// branch on failure kind without string matching.
type resolverError struct {
	message    string
	extensions map[string]interface{}
}

func (e *resolverError) Error() string {
	return e.message
}

func (e *resolverError) Extensions() map[string]interface{} {
	return e.extensions
}

// toClientError translates a domain error into its caller-visible form.
// Expected failures keep their code and message; anything uncoded (or
// explicitly internal) is logged with full detail and replaced by a
// generic message so internal state never crosses into a client payload.
func toClientError(log *slog.Logger, field string, err error) error {
	code := dErrors.CodeOf(err)

	if code == dErrors.CodeInternal {
		log.Error("resolver failure",
			"field", field,
			"error", err,
		)
		return &resolverError{
			message:    "internal server error",
			extensions: map[string]interface{}{"code": "INTERNAL"},
		}
	}

	ext := map[string]interface{}{"code": codeLabel(code)}
	if violations := dErrors.ViolationsOf(err); len(violations) > 0 {
		list := make([]interface{}, 0, len(violations))
		for _, v := range violations {
			list = append(list, map[string]interface{}{
				"field":  v.Field,
				"reason": v.Reason,
			})
		}
		ext["violations"] = list
	}
	return &resolverError{message: err.Error(), extensions: ext}
}

func codeLabel(code dErrors.Code) string {
	switch code {
	case dErrors.CodeUnauthorized, dErrors.CodeInvalidCredential:
		return "UNAUTHORIZED"
	case dErrors.CodeValidation:
		return "VALIDATION_ERROR"
	case dErrors.CodeIllegalTransition:
		return "ILLEGAL_TRANSITION"
	case dErrors.CodeNotFound:
		return "NOT_FOUND"
	case dErrors.CodeConflict:
		return "CONFLICT"
	case dErrors.CodeBadRequest:
		return "BAD_REQUEST"
	default:
		return "INTERNAL"
	}
}
