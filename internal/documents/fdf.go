package documents

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// fdfValue is either a text value or a checkbox state.
type fdfValue struct {
	text    string
	checked bool
	isCheck bool
}

// fdfDocument accumulates field values and serializes them as an FDF file,
// the interchange format PDF viewers merge into fillable forms.
type fdfDocument struct {
	fields map[string]fdfValue
}

func newFDF() *fdfDocument {
	return &fdfDocument{fields: make(map[string]fdfValue)}
}

func (d *fdfDocument) setText(field, value string) {
	if value == "" {
		return
	}
	d.fields[field] = fdfValue{text: value}
}

func (d *fdfDocument) setCheck(field string, checked bool) {
	if !checked {
		return
	}
	d.fields[field] = fdfValue{checked: true, isCheck: true}
}

// escapeFDF quotes the characters that terminate an FDF literal string.
func escapeFDF(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`, "\n", `\n`, "\r", `\r`)
	return r.Replace(s)
}

// Bytes renders the document. Fields are sorted so output is deterministic.
func (d *fdfDocument) Bytes() []byte {
	names := make([]string, 0, len(d.fields))
	for name := range d.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteString("%FDF-1.2\n1 0 obj\n<< /FDF << /Fields [\n")
	for _, name := range names {
		v := d.fields[name]
		if v.isCheck {
			fmt.Fprintf(&buf, "<< /T (%s) /V /Yes >>\n", escapeFDF(name))
			continue
		}
		fmt.Fprintf(&buf, "<< /T (%s) /V (%s) >>\n", escapeFDF(name), escapeFDF(v.text))
	}
	buf.WriteString("] >> >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
	return buf.Bytes()
}
