package types

// Payloads published by the board namespace service under "board/...".

// SymbolInfo is the retained document at board/sym/<symbol>.
type SymbolInfo struct {
	Symbol  string       `json:"symbol" yaml:"symbol"`
	Kind    ResourceKind `json:"kind" yaml:"kind"`
	Pin     *PinIndex    `json:"pin,omitempty" yaml:"pin,omitempty"`
	Bus     BusKind      `json:"bus,omitempty" yaml:"bus,omitempty"`
	Members []RolePin    `json:"members,omitempty" yaml:"members,omitempty"`
	Aliases []string     `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// BoardState is the retained document at board/state.
type BoardState struct {
	Board    string   `json:"board" yaml:"board"`
	Chip     string   `json:"chip" yaml:"chip"`
	Ready    bool     `json:"ready" yaml:"ready"`
	Symbols  int      `json:"symbols" yaml:"symbols"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// ResolveReply answers a request on board/resolve.
type ResolveReply struct {
	Info  *SymbolInfo `json:"info,omitempty" yaml:"info,omitempty"`
	Error string      `json:"error,omitempty" yaml:"error,omitempty"`
}
