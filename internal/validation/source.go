package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/labstack/echo/v4"
)

// ErrMalformedBody is returned when a JSON body cannot be read as an object.
var ErrMalformedBody = errors.New("malformed request body")

// FromQuery converts query values; repeated keys become string lists.
func FromQuery(values url.Values) Input {
	in := make(Input, len(values))
	for key, vals := range values {
		switch len(vals) {
		case 0:
		case 1:
			in[key] = vals[0]
		default:
			list := make([]any, 0, len(vals))
			for _, v := range vals {
				list = append(list, v)
			}
			in[key] = list
		}
	}
	return in
}

// FromParams converts route parameters, unescaping their values.
func FromParams(names, values []string) Input {
	in := make(Input, len(names))
	for i, name := range names {
		if i >= len(values) {
			break
		}
		value := values[i]
		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}
		if value == "" {
			continue
		}
		in[name] = value
	}
	return in
}

// FromJSON decodes a JSON object body. An empty body yields empty input.
func FromJSON(r io.Reader) (Input, error) {
	in := Input{}
	if r == nil {
		return in, nil
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return Input{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return in, nil
}

// Query validates the request query string into T.
func Query[T any](c echo.Context) (T, error) {
	return Decode[T](FromQuery(c.QueryParams()))
}

// Params validates the route parameters into T.
func Params[T any](c echo.Context) (T, error) {
	return Decode[T](FromParams(c.ParamNames(), c.ParamValues()))
}

// Body validates the JSON request body into T.
func Body[T any](c echo.Context) (T, error) {
	in, err := FromJSON(c.Request().Body)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](in)
}
