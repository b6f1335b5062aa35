package ads

// ContentTypeForm is the media type of every mutation body.
const ContentTypeForm = "application/x-www-form-urlencoded"

// EncodeForm builds a URL-encoded request body from fields.
//
// Only fields the caller touched are emitted. An untouched field is left
// unchanged by the server on update, while a field explicitly set to false,
// 0 or "" is always sent.
func EncodeForm(fields []FieldValue) (string, error) {
	pairs, err := encodePairs(fields)
	if err != nil {
		return "", err
	}

	return joinPairs(pairs), nil
}

// FormBody encodes any form type.
func FormBody(f Fielder) (string, error) {
	if f == nil {
		return "", nil
	}

	return EncodeForm(f.Fields())
}
