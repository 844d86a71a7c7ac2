package npm

import (
	"github.com/mailru/easyjson/jlexer"
)

// Packument is the subset of a registry package document px reads.
type Packument struct {
	Name string

	// Versions in the order the registry lists them (publication order).
	Versions []Version
}

// Version is one published version of a package.
type Version struct {
	Number string

	// Deprecated holds the deprecation notice; empty when not deprecated.
	Deprecated string
}

// IsDeprecated reports whether the version carries a deprecation notice.
func (v Version) IsDeprecated() bool { return v.Deprecated != "" }

// Latest returns the last version in document order.
func (p *Packument) Latest() (Version, bool) {
	if len(p.Versions) == 0 {
		return Version{}, false
	}
	return p.Versions[len(p.Versions)-1], true
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Packument) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	p.UnmarshalEasyJSON(&r)
	return r.Error()
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler. Unlike a map-based
// decode it keeps "versions" in document order.
func (p *Packument) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "name":
			p.Name = in.String()
		case "versions":
			p.Versions = decodeVersions(in, p.Versions[:0])
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func decodeVersions(in *jlexer.Lexer, out []Version) []Version {
	in.Delim('{')
	for !in.IsDelim('}') {
		v := Version{Number: in.String()}
		in.WantColon()
		if in.IsNull() {
			in.Skip()
		} else {
			decodeVersion(in, &v)
		}
		out = append(out, v)
		in.WantComma()
	}
	in.Delim('}')
	return out
}

func decodeVersion(in *jlexer.Lexer, v *Version) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "deprecated":
			switch d := in.Interface().(type) {
			case string:
				v.Deprecated = d
			case bool:
				if d {
					v.Deprecated = "deprecated"
				}
			}
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}
