package argument

import "fmt"

// WirePair is one flattened (name, value) unit ready for query-string or
// body serialization.
type WirePair struct {
	Name  string
	Value string
}

// EncodingError reports caller-supplied inputs that violate the supported
// argument shape.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error: %s", e.Reason)
}

// Flatten converts an argument map into an ordered sequence of wire pairs.
//
// Arguments are visited in insertion order. A scalar emits one pair; a list
// emits one pair per element under the same name, in list order; an empty
// list emits nothing. File references and nested lists are not legal here
// and produce an EncodingError.
func Flatten(arguments *Map) ([]WirePair, error) {
	if arguments.Len() == 0 {
		return nil, nil
	}

	pairs := make([]WirePair, 0, arguments.Len())

	for _, name := range arguments.Names() {
		value, _ := arguments.Get(name)

		switch value.Kind() {
		case KindList:
			for _, element := range value.Elements() {
				switch element.Kind() {
				case KindList:
					return nil, &EncodingError{Reason: fmt.Sprintf("unsupported shape: nested list under %q", name)}
				case KindFile:
					return nil, &EncodingError{Reason: fmt.Sprintf("file reference under %q must be an attachment", name)}
				}
				pairs = append(pairs, WirePair{Name: name, Value: element.Scalar()})
			}
		case KindFile:
			return nil, &EncodingError{Reason: fmt.Sprintf("file reference under %q must be an attachment", name)}
		default:
			pairs = append(pairs, WirePair{Name: name, Value: value.Scalar()})
		}
	}

	return pairs, nil
}
