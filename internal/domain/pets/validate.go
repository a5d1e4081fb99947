package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"pet-registry/internal/domain/groups"
	"pet-registry/internal/domain/traits"
)

const (
	msgRequired   = "This field is required."
	msgNull       = "This field may not be null."
	msgBlank      = "This field may not be blank."
	msgNotString  = "Not a valid string."
	msgInvalidInt = "A valid integer is required."
)

var (
	ErrMalformedJSON = errors.New("JSON parse error")

	trailingZeros = regexp.MustCompile(`\.0*\s*$`)
)

// FieldErrors mapea campo -> []string, o FieldErrors / []FieldErrors para
// relaciones anidadas.
type FieldErrors map[string]any

// ValidationError se devuelve como 400 con Fields como body.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// decodeCreate valida el payload completo del POST.
func decodeCreate(r io.Reader) (CreateInput, error) {
	raw, err := decodeObject(r)
	if err != nil {
		return CreateInput{}, err
	}

	var in CreateInput
	errs := FieldErrors{}

	if v, ok := raw["name"]; !ok {
		errs["name"] = []string{msgRequired}
	} else if s, msg := parseName(v); msg != "" {
		errs["name"] = []string{msg}
	} else {
		in.Name = s
	}

	if v, ok := raw["age"]; !ok {
		errs["age"] = []string{msgRequired}
	} else if n, msg := parseInt(v); msg != "" {
		errs["age"] = []string{msg}
	} else {
		in.Age = n
	}

	if v, ok := raw["weight"]; !ok {
		errs["weight"] = []string{msgRequired}
	} else if w, msg := parseWeight(v); msg != "" {
		errs["weight"] = []string{msg}
	} else {
		in.Weight = w
	}

	in.Sex = SexDefault
	if v, ok := raw["sex"]; ok {
		if sx, msg := parseSex(v); msg != "" {
			errs["sex"] = []string{msg}
		} else {
			in.Sex = sx
		}
	}

	if v, ok := raw["group"]; !ok {
		errs["group"] = []string{msgRequired}
	} else if g, gerr := parseGroup(v, false); gerr != nil {
		errs["group"] = gerr
	} else {
		in.Group = g
	}

	if v, ok := raw["traits"]; !ok {
		errs["traits"] = []string{msgRequired}
	} else if ts, terr := parseTraits(v); terr != nil {
		errs["traits"] = terr
	} else {
		in.Traits = ts
	}

	if len(errs) > 0 {
		return CreateInput{}, &ValidationError{Fields: errs}
	}
	return in, nil
}

// decodeUpdate valida sólo los campos presentes (PATCH). weight y sex se
// validan pero no forman parte del allow-list de campos modificables.
func decodeUpdate(r io.Reader) (UpdateInput, error) {
	raw, err := decodeObject(r)
	if err != nil {
		return UpdateInput{}, err
	}

	var in UpdateInput
	errs := FieldErrors{}

	if v, ok := raw["name"]; ok {
		if s, msg := parseName(v); msg != "" {
			errs["name"] = []string{msg}
		} else {
			in.Name = &s
		}
	}
	if v, ok := raw["age"]; ok {
		if n, msg := parseInt(v); msg != "" {
			errs["age"] = []string{msg}
		} else {
			in.Age = &n
		}
	}
	if v, ok := raw["weight"]; ok {
		if _, msg := parseWeight(v); msg != "" {
			errs["weight"] = []string{msg}
		}
	}
	if v, ok := raw["sex"]; ok {
		if _, msg := parseSex(v); msg != "" {
			errs["sex"] = []string{msg}
		}
	}
	if v, ok := raw["group"]; ok {
		if g, gerr := parseGroup(v, true); gerr != nil {
			errs["group"] = gerr
		} else {
			in.Group = &g
		}
	}
	if v, ok := raw["traits"]; ok {
		if ts, terr := parseTraits(v); terr != nil {
			errs["traits"] = terr
		} else {
			in.Traits = ts
		}
	}

	if len(errs) > 0 {
		return UpdateInput{}, &ValidationError{Fields: errs}
	}
	return in, nil
}

func decodeObject(r io.Reader) (map[string]json.RawMessage, error) {
	var body json.RawMessage
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if k := kindOf(body); k != "object" {
		return nil, &ValidationError{Fields: FieldErrors{
			"non_field_errors": []string{notADict(k)},
		}}
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return raw, nil
}

// kindOf devuelve el tipo JSON de v sin decodificarlo.
func kindOf(v json.RawMessage) string {
	b := bytes.TrimSpace(v)
	if len(b) == 0 {
		return "null"
	}
	switch b[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func notADict(kind string) string {
	names := map[string]string{
		"array":  "list",
		"string": "str",
		"number": "int",
		"bool":   "bool",
		"null":   "NoneType",
	}
	return fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", names[kind])
}

// parseString acepta strings y números (como texto) y recorta espacios.
func parseString(v json.RawMessage) (string, string) {
	switch kindOf(v) {
	case "null":
		return "", msgNull
	case "string":
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", msgNotString
		}
		return strings.TrimSpace(s), ""
	case "number":
		return strings.TrimSpace(string(v)), ""
	default:
		return "", msgNotString
	}
}

func parseName(v json.RawMessage) (string, string) {
	s, msg := parseString(v)
	if msg != "" {
		return "", msg
	}
	if s == "" {
		return "", msgBlank
	}
	return s, ""
}

func parseInt(v json.RawMessage) (int, string) {
	switch kindOf(v) {
	case "null":
		return 0, msgNull
	case "number":
		f, err := strconv.ParseFloat(string(bytes.TrimSpace(v)), 64)
		if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
			return 0, msgInvalidInt
		}
		return int(f), ""
	case "string":
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return 0, msgInvalidInt
		}
		s = trailingZeros.ReplaceAllString(strings.TrimSpace(s), "")
		// Mismo rango que la columna INTEGER, igual que para números JSON.
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return 0, msgInvalidInt
		}
		return int(n), ""
	default:
		return 0, msgInvalidInt
	}
}

func parseWeight(v json.RawMessage) (Weight, string) {
	var text string
	switch kindOf(v) {
	case "null":
		return 0, msgNull
	case "number":
		// Igual que un float de JSON: 12.50 => "12.5".
		f, err := strconv.ParseFloat(string(bytes.TrimSpace(v)), 64)
		if err != nil {
			return 0, ErrWeightInvalid.Error()
		}
		text = strconv.FormatFloat(f, 'f', -1, 64)
	case "string":
		if err := json.Unmarshal(v, &text); err != nil {
			return 0, ErrWeightInvalid.Error()
		}
	default:
		return 0, ErrWeightInvalid.Error()
	}

	w, err := ParseWeight(text)
	if err != nil {
		return 0, err.Error()
	}
	return w, ""
}

func parseSex(v json.RawMessage) (Sex, string) {
	if kindOf(v) == "null" {
		return "", msgNull
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Sprintf("%q is not a valid choice.", strings.TrimSpace(string(v)))
	}
	sx := Sex(s)
	if !sx.Valid() {
		return "", fmt.Sprintf("%q is not a valid choice.", s)
	}
	return sx, ""
}

// parseGroup valida el objeto group. partial => scientific_name puede faltar.
func parseGroup(v json.RawMessage, partial bool) (groups.Descriptor, any) {
	k := kindOf(v)
	if k == "null" {
		return groups.Descriptor{}, []string{msgNull}
	}
	if k != "object" {
		return groups.Descriptor{}, FieldErrors{"non_field_errors": []string{notADict(k)}}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(v, &raw); err != nil {
		return groups.Descriptor{}, FieldErrors{"non_field_errors": []string{notADict(k)}}
	}

	sn, ok := raw["scientific_name"]
	if !ok {
		if partial {
			return groups.Descriptor{}, nil
		}
		return groups.Descriptor{}, FieldErrors{"scientific_name": []string{msgRequired}}
	}
	s, msg := parseName(sn)
	if msg != "" {
		return groups.Descriptor{}, FieldErrors{"scientific_name": []string{msg}}
	}
	return groups.Descriptor{ScientificName: s}, nil
}

// parseTraits valida la lista; los errores van alineados por posición.
func parseTraits(v json.RawMessage) ([]traits.Descriptor, any) {
	k := kindOf(v)
	if k == "null" {
		return nil, []string{msgNull}
	}
	if k != "array" {
		names := map[string]string{"object": "dict", "string": "str", "number": "int", "bool": "bool"}
		return nil, FieldErrors{"non_field_errors": []string{
			fmt.Sprintf("Expected a list of items but got type %q.", names[k]),
		}}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return nil, []string{msgNotString}
	}

	out := make([]traits.Descriptor, 0, len(items))
	itemErrs := make([]FieldErrors, len(items))
	failed := false
	for i, item := range items {
		itemErrs[i] = FieldErrors{}

		ik := kindOf(item)
		if ik != "object" {
			itemErrs[i]["non_field_errors"] = []string{notADict(ik)}
			failed = true
			continue
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(item, &raw); err != nil {
			itemErrs[i]["non_field_errors"] = []string{notADict(ik)}
			failed = true
			continue
		}
		nv, ok := raw["name"]
		if !ok {
			itemErrs[i]["name"] = []string{msgRequired}
			failed = true
			continue
		}
		name, msg := parseName(nv)
		if msg != "" {
			itemErrs[i]["name"] = []string{msg}
			failed = true
			continue
		}
		out = append(out, traits.Descriptor{Name: name})
	}

	if failed {
		return nil, itemErrs
	}
	return out, nil
}
