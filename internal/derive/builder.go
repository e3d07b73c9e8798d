package derive

import (
	"fmt"

	"rsderive/internal/diag"
	"rsderive/internal/introspect"
	"rsderive/internal/record"
	"rsderive/internal/rsemit"
)

const (
	optionPath  = "::core::option::Option"
	resultPath  = "::core::result::Result"
	defaultCall = "::core::default::Default::default()"
	errBoxType  = "::std::boxed::Box<dyn ::std::error::Error>"
)

// builderField is a field together with its classification and rendered types.
type builderField struct {
	*record.Field
	class introspect.Classification
	// declared is the field type as written; inner is the Optional/Repeated
	// element type.
	declared string
	inner    string
}

// storage is the builder slot type.
func (f *builderField) storage() string {
	switch f.class.Kind {
	case introspect.Optional:
		return optionPath + "<" + f.inner + ">"
	case introspect.Repeated:
		return f.declared
	default:
		return optionPath + "<" + f.declared + ">"
	}
}

// Builder generates the `<Name>Builder` companion type, the `builder()`
// constructor on the record, the setters and `build()`.
func Builder(decl *record.Decl, cfg Config) (string, error) {
	printer := rsemit.NewPrinter(decl.Types)
	fields := make([]builderField, 0, len(decl.Fields))
	for i := range decl.Fields {
		f := &decl.Fields[i]
		class, err := introspect.Classify(decl, f, cfg.Names)
		if err != nil {
			return "", err
		}
		bf := builderField{Field: f, class: class, declared: printer.Type(f.Type)}
		if class.Inner.IsValid() {
			bf.inner = printer.Type(class.Inner)
		}
		fields = append(fields, bf)
	}
	if err := checkMethodNames(fields); err != nil {
		return "", err
	}

	name := decl.Name
	builderName := record.DisplayName(decl.Name) + "Builder"
	typeArgs := rsemit.TypeGenerics(decl.Generics)
	implParams := printer.ImplGenerics(decl.Generics, nil)
	where := rsemit.WhereClause(printer.WherePredicates(decl.Generics))

	w := rsemit.NewWriter()

	w.Line("#[automatically_derived]")
	w.Open("pub struct " + builderName + printer.DeclGenerics(decl.Generics) + where)
	for i := range fields {
		w.Linef("%s: %s,", fields[i].Name, fields[i].storage())
	}
	w.Close("")
	w.Newline()

	w.Line("#[automatically_derived]")
	w.Open("impl" + implParams + " " + name + typeArgs + where)
	w.Open("pub fn builder() -> " + builderName + typeArgs)
	w.Open(builderName)
	for i := range fields {
		init := optionPath + "::None"
		if fields[i].class.Kind == introspect.Repeated {
			init = defaultCall
		}
		w.Linef("%s: %s,", fields[i].Name, init)
	}
	w.Close("")
	w.Close("")
	w.Close("")
	w.Newline()

	w.Line("#[automatically_derived]")
	w.Open("impl" + implParams + " " + builderName + typeArgs + where)
	for i := range fields {
		writeSetters(w, &fields[i])
	}
	writeBuild(w, name+typeArgs, name, fields)
	w.Close("")
	return w.String(), nil
}

func writeSetters(w *rsemit.Writer, f *builderField) {
	switch f.class.Kind {
	case introspect.Optional:
		w.Open(fmt.Sprintf("pub fn %s(&mut self, %s: %s) -> &mut Self", f.Name, f.Name, f.inner))
		w.Linef("self.%s = %s::Some(%s);", f.Name, optionPath, f.Name)
	case introspect.Repeated:
		acc := f.class.Accessor
		w.Open(fmt.Sprintf("pub fn %s(&mut self, %s: %s) -> &mut Self", acc, acc, f.inner))
		w.Linef("self.%s.push(%s);", f.Name, acc)
		if acc != f.Name {
			w.Line("self")
			w.Close("")
			w.Newline()
			// bulk setter replaces everything pushed so far
			w.Open(fmt.Sprintf("pub fn %s(&mut self, %s: %s) -> &mut Self", f.Name, f.Name, f.declared))
			w.Linef("self.%s = %s;", f.Name, f.Name)
		}
	default:
		w.Open(fmt.Sprintf("pub fn %s(&mut self, %s: %s) -> &mut Self", f.Name, f.Name, f.declared))
		w.Linef("self.%s = %s::Some(%s);", f.Name, optionPath, f.Name)
	}
	w.Line("self")
	w.Close("")
	w.Newline()
}

// writeBuild emits build(): the first unset Plain field in declaration
// order fails the call before anything is constructed.
func writeBuild(w *rsemit.Writer, recordType, recordName string, fields []builderField) {
	w.Open(fmt.Sprintf("pub fn build(&mut self) -> %s<%s, %s>", resultPath, recordType, errBoxType))
	for i := range fields {
		f := &fields[i]
		if f.class.Kind != introspect.Plain {
			continue
		}
		w.Open(fmt.Sprintf("if self.%s.is_none()", f.Name))
		w.Linef("return %s::Err(::std::format!(\"{} field missing\", %s).into());",
			resultPath, rsemit.Quote(record.DisplayName(f.Name)))
		w.Close("")
	}
	w.Open(fmt.Sprintf("%s::Ok(%s", resultPath, recordName))
	for i := range fields {
		f := &fields[i]
		if f.class.Kind == introspect.Plain {
			w.Linef("%s: ::core::clone::Clone::clone(&self.%s).unwrap(),", f.Name, f.Name)
		} else {
			w.Linef("%s: ::core::clone::Clone::clone(&self.%s),", f.Name, f.Name)
		}
	}
	w.Close(")")
	w.Close("")
}

// checkMethodNames rejects `each` accessors that collide with another
// builder method.
func checkMethodNames(fields []builderField) error {
	taken := map[string]bool{"build": true}
	for i := range fields {
		f := &fields[i]
		if f.class.Kind != introspect.Repeated || f.class.Accessor != f.Name {
			taken[f.Name] = true
		}
	}
	for i := range fields {
		f := &fields[i]
		if f.class.Kind != introspect.Repeated {
			continue
		}
		if taken[f.class.Accessor] {
			return record.Errorf(diag.DeriveAttrBadLiteral, f.class.AccessorSpan,
				"`each` accessor `%s` conflicts with another builder method", f.class.Accessor)
		}
		taken[f.class.Accessor] = true
	}
	return nil
}
