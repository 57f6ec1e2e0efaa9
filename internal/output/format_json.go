package output

import (
	"encoding/json"
)

// JSONFormatter renders a report as JSON.
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a report.
func (jf *JSONFormatter) Format(r *Report) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
