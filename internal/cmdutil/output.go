package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/joelklabo/markdowntown/internal/output"
)

// WriteEncoded writes v to w as JSON or YAML. Text output is the caller's
// job and is rejected here.
func WriteEncoded(w io.Writer, format output.Format, v any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case output.FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case output.FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("format %q is not an encoding", format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s output: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}
