package templates

import (
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/quantumauth-io/typed-data-signer/internal/constants"
	"github.com/quantumauth-io/typed-data-signer/internal/typeddata"
)

//go:embed samples/*.json
var samplesFS embed.FS

// Template is a ready-to-edit typed-data sample for one signing method.
type Template struct {
	Method typeddata.Method `json:"method"`
	Label  string           `json:"label"`
	JSON   string           `json:"json"`
}

type sample struct {
	method typeddata.Method
	label  string
	file   string
}

var samples = []sample{
	{typeddata.MethodV1, "eth_signTypedData (v1)", "mail_v1.json"},
	{typeddata.MethodV3, "eth_signTypedData_v3", "permit2_v3.json"},
	{typeddata.MethodV4, "Ether Mail", "ether_mail_v4.json"},
	{typeddata.MethodV4, "BatchTransfer (MultiSig)", "batch_transfer_v4.json"},
}

var catalog = mustLoad()

func mustLoad() []Template {
	out, err := load()
	if err != nil {
		panic(err)
	}
	return out
}

func load() ([]Template, error) {
	out := make([]Template, 0, len(samples))
	for _, s := range samples {
		data, err := samplesFS.ReadFile("samples/" + s.file)
		if err != nil {
			return nil, errors.Wrapf(err, "read sample %s", s.file)
		}
		pretty, err := typeddata.Format(string(data))
		if err != nil {
			return nil, errors.Wrapf(err, "format sample %s", s.file)
		}
		out = append(out, Template{Method: s.method, Label: s.label, JSON: pretty})
	}
	return out, nil
}

// All returns every template, grouped by method in catalog order.
func All() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// For returns the templates registered for method.
func For(method typeddata.Method) []Template {
	var out []Template
	for _, t := range catalog {
		if t.Method == method {
			out = append(out, t)
		}
	}
	return out
}

// Default returns the first template for method.
func Default(method typeddata.Method) (Template, bool) {
	for _, t := range catalog {
		if t.Method == method {
			return t, true
		}
	}
	return Template{}, false
}

// Find looks a template up by method and label. Labels match case-insensitively.
func Find(method typeddata.Method, label string) (Template, error) {
	if label == "" {
		if t, ok := Default(method); ok {
			return t, nil
		}
	}
	for _, t := range catalog {
		if t.Method == method && strings.EqualFold(t.Label, label) {
			return t, nil
		}
	}
	return Template{}, errors.Newf("no template %q for %s", label, method.WireName())
}

// WriteFile saves editor text to path, appending the .json extension when missing.
// The text is written as-is. It returns the path actually written.
func WriteFile(path, text string) (string, error) {
	if path == "" {
		return "", errors.New("export path is empty")
	}
	if !strings.EqualFold(filepath.Ext(path), constants.JSONExtension) {
		path += constants.JSONExtension
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", errors.Wrap(err, "create export dir")
		}
	}
	if err := os.WriteFile(path, []byte(text), constants.FilePerm); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, nil
}

// ReadFile loads a previously exported file back as editor text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}
