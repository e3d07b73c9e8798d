package derive

import (
	"rsderive/internal/ast"
	"rsderive/internal/bounds"
	"rsderive/internal/introspect"
	"rsderive/internal/record"
	"rsderive/internal/rsemit"
)

// FieldReport describes how the builder sees one field.
type FieldReport struct {
	Name     string `json:"name" msgpack:"name"`
	Type     string `json:"type" msgpack:"type"`
	Kind     string `json:"kind" msgpack:"kind"`
	Inner    string `json:"inner,omitempty" msgpack:"inner,omitempty"`
	Accessor string `json:"each,omitempty" msgpack:"each,omitempty"`
	Format   string `json:"format,omitempty" msgpack:"format,omitempty"`
	Error    string `json:"error,omitempty" msgpack:"error,omitempty"`
}

// ParamReport describes the bound decision for one type parameter.
type ParamReport struct {
	Name     string   `json:"name" msgpack:"name"`
	Decision string   `json:"decision" msgpack:"decision"`
	Direct   bool     `json:"direct" msgpack:"direct"`
	Marker   bool     `json:"marker" msgpack:"marker"`
	Assoc    []string `json:"assoc,omitempty" msgpack:"assoc,omitempty"`
}

// RecordReport is the inspection result for one item with derive requests.
type RecordReport struct {
	Name       string        `json:"name" msgpack:"name"`
	Derives    []string      `json:"derives" msgpack:"derives"`
	Fields     []FieldReport `json:"fields,omitempty" msgpack:"fields,omitempty"`
	Params     []ParamReport `json:"params,omitempty" msgpack:"params,omitempty"`
	Predicates []string      `json:"predicates,omitempty" msgpack:"predicates,omitempty"`
	Override   bool          `json:"override,omitempty" msgpack:"override,omitempty"`
	Error      string        `json:"error,omitempty" msgpack:"error,omitempty"`
}

// Inspect reports field classifications and bound decisions for every item
// of fileID that requests Builder or CustomDebug. Errors are recorded in the
// report, not returned.
func Inspect(b *ast.Builder, fileID ast.FileID, cfg Config) []RecordReport {
	file := b.Files.Get(fileID)
	if file == nil {
		return nil
	}
	var out []RecordReport
	for _, id := range file.Items {
		item := b.Items.Get(id)
		var names []string
		for _, d := range record.Derives(item.Attrs) {
			if d.Name == NameBuilder || d.Name == NameDebug {
				names = append(names, d.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		rep := RecordReport{Name: itemName(b, id), Derives: names}
		decl, err := record.FromItem(b, id)
		if err != nil {
			rep.Error = err.Error()
			out = append(out, rep)
			continue
		}
		inspectDecl(decl, cfg, &rep)
		out = append(out, rep)
	}
	return out
}

func inspectDecl(decl *record.Decl, cfg Config, rep *RecordReport) {
	printer := rsemit.NewPrinter(decl.Types)
	for i := range decl.Fields {
		f := &decl.Fields[i]
		fr := FieldReport{Name: record.DisplayName(f.Name), Type: printer.Type(f.Type)}
		cls, err := introspect.Classify(decl, f, cfg.Names)
		if err != nil {
			fr.Error = err.Error()
		} else {
			fr.Kind = cls.Kind.String()
			fr.Accessor = cls.Accessor
			if cls.Kind != introspect.Plain {
				fr.Inner = printer.Type(cls.Inner)
			}
		}
		if format, _, ok, ferr := FieldFormat(f); ferr != nil {
			if fr.Error == "" {
				fr.Error = ferr.Error()
			}
		} else if ok {
			fr.Format = format
		}
		rep.Fields = append(rep.Fields, fr)
	}

	res, err := bounds.Infer(decl, cfg.Names, cfg.DebugTrait)
	if err != nil {
		rep.Error = err.Error()
		return
	}
	rep.Override = res.Override
	rep.Predicates = res.Predicates
	for _, p := range res.Params {
		pr := ParamReport{
			Name:     p.Name,
			Decision: p.Decision.String(),
			Direct:   p.Usage.Direct,
			Marker:   p.Usage.Marker,
		}
		for _, a := range p.Usage.Assoc {
			pr.Assoc = append(pr.Assoc, a.Text)
		}
		rep.Params = append(rep.Params, pr)
	}
}
