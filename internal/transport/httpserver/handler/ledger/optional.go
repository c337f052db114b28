package ledger

import "encoding/json"

// optionalNullableFloat tells an absent field apart from an explicit null.
type optionalNullableFloat struct {
	Set   bool
	Value *float64
}

func (o *optionalNullableFloat) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	o.Value = &value
	return nil
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
