// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"

	"github.com/pdiddy/signal-scout/pkg/types"
)

// ValidationError is a client-caused rejection of the input payload. It
// is terminal: no network call is attempted once validation fails.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// Validate turns an untrusted payload into a SearchRequest. The query
// must be a non-empty string after trimming; platforms must be a
// non-empty array of recognized identifiers. An unknown identifier
// rejects the whole request rather than being silently dropped.
// Duplicates collapse. Pure function, no side effects.
func Validate(payload map[string]any) (types.SearchRequest, error) {
	rawQuery, ok := payload["query"]
	if !ok {
		return types.SearchRequest{}, &ValidationError{Field: "query", Msg: "missing"}
	}
	query, ok := rawQuery.(string)
	if !ok {
		return types.SearchRequest{}, &ValidationError{Field: "query", Msg: "must be a string"}
	}

	rawPlatforms, ok := payload["platforms"]
	if !ok {
		return types.SearchRequest{}, &ValidationError{Field: "platforms", Msg: "missing"}
	}

	var names []string
	switch v := rawPlatforms.(type) {
	case []any:
		for _, el := range v {
			s, ok := el.(string)
			if !ok {
				return types.SearchRequest{}, &ValidationError{Field: "platforms", Msg: "entries must be strings"}
			}
			names = append(names, s)
		}
	case []string:
		names = v
	default:
		return types.SearchRequest{}, &ValidationError{Field: "platforms", Msg: "must be an array"}
	}

	if len(names) == 0 {
		return types.SearchRequest{}, &ValidationError{Field: "platforms", Msg: "must not be empty"}
	}

	platforms := make([]types.PlatformID, 0, len(names))
	for _, name := range names {
		p, err := types.ParsePlatform(name)
		if err != nil {
			return types.SearchRequest{}, &ValidationError{Field: "platforms", Msg: err.Error()}
		}
		platforms = append(platforms, p)
	}

	req, err := types.NewSearchRequest(query, platforms)
	if err != nil {
		return types.SearchRequest{}, &ValidationError{Field: "query", Msg: err.Error()}
	}
	return req, nil
}
