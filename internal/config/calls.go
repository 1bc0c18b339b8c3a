package config

// CallKind classifies a translatable call name.
type CallKind uint8

const (
	CallUnknown CallKind = iota
	// CallCustom is a configured translatable name without built-in semantics.
	CallCustom
	CallGettext        // __
	CallGettextEcho    // _e
	CallContext        // _x
	CallContextEcho    // _ex
	CallEscHTML        // esc_html__
	CallEscHTMLEcho    // esc_html_e
	CallEscHTMLContext // esc_html_x
	CallEscAttr        // esc_attr__
	CallEscAttrEcho    // esc_attr_e
	CallEscAttrContext // esc_attr_x
)

// CallInfo holds what rules need to know about one call name.
type CallInfo struct {
	Name            string
	Kind            CallKind
	Translatable    bool
	Escaped         bool
	Echo            bool
	HasContext      bool
	ContextRequired bool

	// ContextVariant is the name to switch to when adding a context argument.
	// ContextEcho means the variant does not echo and needs an "echo " prefix.
	ContextVariant string
	ContextEcho    bool
	// EscapedVariant is the escaping replacement, possibly "echo esc_html_x".
	EscapedVariant string
}

type builtin struct {
	kind                     CallKind
	escaped, echo, context   bool
	contextVariant, escaping string
}

var builtins = map[string]builtin{
	"__":         {kind: CallGettext, contextVariant: "_x", escaping: "esc_html__"},
	"_e":         {kind: CallGettextEcho, echo: true, contextVariant: "_ex", escaping: "esc_html_e"},
	"_x":         {kind: CallContext, context: true, escaping: "esc_html_x"},
	"_ex":        {kind: CallContextEcho, echo: true, context: true, escaping: "echo esc_html_x"},
	"esc_html__": {kind: CallEscHTML, escaped: true, contextVariant: "esc_html_x"},
	"esc_html_e": {kind: CallEscHTMLEcho, escaped: true, echo: true, contextVariant: "esc_html_x"},
	"esc_html_x": {kind: CallEscHTMLContext, escaped: true, context: true},
	"esc_attr__": {kind: CallEscAttr, escaped: true, contextVariant: "esc_attr_x"},
	"esc_attr_e": {kind: CallEscAttrEcho, escaped: true, echo: true, contextVariant: "esc_attr_x"},
	"esc_attr_x": {kind: CallEscAttrContext, escaped: true, context: true},
}

// CallTable resolves call names. Names are case-sensitive, as the host tool matched them.
type CallTable struct {
	calls map[string]CallInfo
}

// NewCallTable builds the table from the configured translatable and
// context-required names. Context-required names are translatable too.
func NewCallTable(translatable, contextRequired []string) *CallTable {
	t := &CallTable{calls: make(map[string]CallInfo)}
	add := func(name string) CallInfo {
		if info, ok := t.calls[name]; ok {
			return info
		}
		info := CallInfo{Name: name, Kind: CallCustom, Translatable: true}
		if b, ok := builtins[name]; ok {
			info.Kind = b.kind
			info.Escaped = b.escaped
			info.Echo = b.echo
			info.HasContext = b.context
			info.ContextVariant = b.contextVariant
			info.ContextEcho = b.echo && b.escaped
			info.EscapedVariant = b.escaping
		}
		return info
	}
	for _, name := range translatable {
		t.calls[name] = add(name)
	}
	for _, name := range contextRequired {
		info := add(name)
		info.ContextRequired = true
		t.calls[name] = info
	}
	return t
}

// Lookup returns the call info for name.
func (t *CallTable) Lookup(name string) (CallInfo, bool) {
	info, ok := t.calls[name]
	return info, ok
}

// Len returns the number of known call names.
func (t *CallTable) Len() int { return len(t.calls) }

// DomainIndex is the argument position of the text domain.
func (info CallInfo) DomainIndex() int {
	if info.HasContext {
		return 2
	}
	return 1
}
