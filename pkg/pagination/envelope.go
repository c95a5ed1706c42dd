package pagination

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// envelope is the pagination-metadata half of one API response page.
type envelope struct {
	Page        intish `json:"page"`
	Pages       intish `json:"pages"`
	LastUpdated string `json:"lastupdated"`
}

// intish decodes page counters that the API serves either as JSON numbers
// or as numeric strings, depending on the endpoint.
type intish int

func (n *intish) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("numeric value expected, got %s", data)
	}
	*n = intish(v)
	return nil
}

// page is one fully decoded API response page.
type page struct {
	env     envelope
	records []Record
}

// decodePage classifies a raw response into a success page, a remote
// error, or an unexpected shape. Classification is an explicit three-way
// decode: success envelope first, then the known error envelope, then the
// diagnostic fallback.
func decodePage(raw json.RawMessage) (*page, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || len(elems) == 0 {
		return nil, unexpected(raw)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(elems[0], &probe); err != nil {
		return nil, unexpected(raw)
	}

	// Success shape: [envelope, records] with page and pages present.
	_, hasPage := probe["page"]
	_, hasPages := probe["pages"]
	if hasPage && hasPages && len(elems) >= 2 {
		var env envelope
		if err := json.Unmarshal(elems[0], &env); err != nil {
			return nil, unexpected(raw)
		}
		var records []Record
		if err := json.Unmarshal(elems[1], &records); err != nil {
			return nil, unexpected(raw)
		}
		return &page{env: env, records: records}, nil
	}

	// Known error shape: the envelope carries message[0] with id/key/value.
	var errEnv struct {
		Message []struct {
			ID    string `json:"id"`
			Key   string `json:"key"`
			Value string `json:"value"`
		} `json:"message"`
	}
	if err := json.Unmarshal(elems[0], &errEnv); err == nil && len(errEnv.Message) > 0 {
		m := errEnv.Message[0]
		return nil, &APIError{ID: m.ID, Key: m.Key, Value: m.Value}
	}

	return nil, unexpected(raw)
}

// unexpected builds the diagnostic error for a response matching neither
// known shape, carrying an indented dump of the offending body.
func unexpected(raw json.RawMessage) *UnexpectedResponseError {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	return &UnexpectedResponseError{Dump: buf.String()}
}
