package desktop

import (
	"strings"

	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/types"
)

// Group names and keys from the desktop entry specification
const (
	GroupDesktopEntry    = "Desktop Entry"
	GroupKDEDesktopEntry = "KDE Desktop Entry"

	KeyType       = "Type"
	KeyName       = "Name"
	KeyComment    = "Comment"
	KeyIcon       = "Icon"
	KeyNoDisplay  = "NoDisplay"
	KeyOnlyShowIn = "OnlyShowIn"
	KeyNotShowIn  = "NotShowIn"

	TypeApplication = "Application"

	// FileExtension is the suffix of descriptor files
	FileExtension = ".desktop"
)

// Entry is one parsed descriptor file. Entries are immutable: modifying
// methods return a new Entry.
type Entry struct {
	path  string
	group string
	doc   *Document
}

// Parser loads entries through a filesystem
type Parser struct {
	fs types.FS
}

// NewParser returns a Parser reading from fs
func NewParser(fs types.FS) *Parser {
	return &Parser{fs: fs}
}

// Parse loads the entry at path
func (p *Parser) Parse(path string) (*Entry, error) {
	return Parse(p.fs, path)
}

// Parse loads the entry at path from fs
func Parse(fs types.FS, path string) (*Entry, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}
	entry, err := ParseBytes(path, data)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ParseBytes parses data as the entry located at path
func ParseBytes(path string, data []byte) (*Entry, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		parseErr := errors.Newf(errors.ErrParse, "failed to parse %s: %s", path, errors.Message(err)).
			WithDetail("path", path)
		if line, ok := errors.GetErrorDetails(err)["line"]; ok {
			parseErr.WithDetail("line", line)
		}
		return nil, parseErr
	}

	var group string
	switch {
	case doc.HasGroup(GroupDesktopEntry):
		group = GroupDesktopEntry
	case doc.HasGroup(GroupKDEDesktopEntry):
		group = GroupKDEDesktopEntry
	default:
		return nil, errors.Newf(errors.ErrParse, "failed to parse %s: [%s] group missing", path, GroupDesktopEntry).
			WithDetail("path", path)
	}

	return &Entry{path: path, group: group, doc: doc}, nil
}

// Path returns the file the entry was loaded from
func (e *Entry) Path() string { return e.path }

// Get returns the raw value of key in the main group
func (e *Entry) Get(key string) (string, bool) {
	return e.doc.Get(e.group, key)
}

// Type returns the Type key
func (e *Entry) Type() string { return e.str(KeyType) }

// IsApplication reports whether the entry describes an application
func (e *Entry) IsApplication() bool { return e.Type() == TypeApplication }

// Name returns the unlocalized Name key
func (e *Entry) Name() string { return e.str(KeyName) }

// Comment returns the unlocalized Comment key
func (e *Entry) Comment() string { return e.str(KeyComment) }

// Icon returns the Icon key
func (e *Entry) Icon() string { return e.str(KeyIcon) }

// NoDisplay returns the NoDisplay key, false when absent
func (e *Entry) NoDisplay() bool { return e.boolean(KeyNoDisplay) }

// OnlyShowIn returns the desktops the entry is restricted to
func (e *Entry) OnlyShowIn() []string { return e.list(KeyOnlyShowIn) }

// NotShowIn returns the desktops the entry is hidden from
func (e *Entry) NotShowIn() []string { return e.list(KeyNotShowIn) }

// WithNoDisplay returns a copy of the entry with NoDisplay set to value
func (e *Entry) WithNoDisplay(value bool) *Entry {
	doc := e.doc.Clone()
	doc.Set(e.group, KeyNoDisplay, formatBool(value))
	return &Entry{path: e.path, group: e.group, doc: doc}
}

// Bytes serialises the entry
func (e *Entry) Bytes() []byte {
	return e.doc.Bytes()
}

func (e *Entry) str(key string) string {
	v, _ := e.Get(key)
	return unescape(v)
}

func (e *Entry) boolean(key string) bool {
	v, _ := e.Get(key)
	switch v {
	case "true", "True", "1":
		return true
	}
	return false
}

func (e *Entry) list(key string) []string {
	v, ok := e.Get(key)
	if !ok || v == "" {
		return nil
	}
	return splitList(v)
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// unescape decodes \s \n \t \r and \\ sequences
func unescape(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c != '\\' || i == len(v)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch v[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(v[i])
		}
	}
	return b.String()
}

// splitList splits a semicolon separated value, honouring \; escapes
func splitList(v string) []string {
	var items []string
	var cur strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\\' && i+1 < len(v) && v[i+1] == ';' {
			cur.WriteByte(';')
			i++
			continue
		}
		if c == ';' {
			items = append(items, unescape(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	if cur.Len() > 0 {
		items = append(items, unescape(cur.String()))
	}
	return items
}
