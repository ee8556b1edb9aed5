package expansion

import "github.com/walteh/gotex/pkg/preparse"

// Args is the argument specification of one definition. Count is the
// total declared count; required arguments are Count minus the
// optional ones. Optional holds the default-value token range of each
// positional optional in declaration order; OptionalNamed maps a
// named optional to its default-value range.
type Args struct {
	Count         uint16
	Optional      []preparse.TokenRange
	OptionalNamed map[string]preparse.TokenRange
}

// StoreItem is one resolved definition. Token is the index of the
// definition's head token. Name is a slice of the source text: for
// macros and defs it keeps the leading backslash, for environments it
// is the bare identifier. Body and SecondBody are token ranges between
// the body braces, the braces themselves excluded; SecondBody is set
// only for environments. Positional and Named map each parameter to
// the token indices where it occurs inside the bodies, in scan order.
type StoreItem struct {
	Kind       preparse.DefinitionKind
	Token      int
	Name       string
	Args       Args
	Body       preparse.TokenRange
	SecondBody *preparse.TokenRange
	Positional map[uint16][]uint32
	Named      map[string][]uint32
}

type storeKey struct {
	kind preparse.DefinitionKind
	idx  int
}

// Store holds the resolved definitions of one source unit,
// partitioned by kind, with a name index over all three partitions.
// On duplicate names the last inserted definition wins the index
// entry; the shadowed one stays retrievable through ByKind.
type Store struct {
	macros []StoreItem
	defs   []StoreItem
	envs   []StoreItem
	byName map[string]storeKey
}

func NewStore() *Store {
	return &Store{byName: make(map[string]storeKey)}
}

// Insert appends item to its kind partition and points the name index
// at it.
func (me *Store) Insert(item StoreItem) {
	var idx int
	switch item.Kind {
	case preparse.DefMacro:
		me.macros = append(me.macros, item)
		idx = len(me.macros) - 1
	case preparse.DefDef:
		me.defs = append(me.defs, item)
		idx = len(me.defs) - 1
	case preparse.DefEnvironment:
		me.envs = append(me.envs, item)
		idx = len(me.envs) - 1
	}
	me.byName[item.Name] = storeKey{kind: item.Kind, idx: idx}
}

// Get returns the definition the name index points at.
func (me *Store) Get(name string) (StoreItem, bool) {
	key, ok := me.byName[name]
	if !ok {
		return StoreItem{}, false
	}
	items := me.ByKind(key.kind)
	if key.idx >= len(items) {
		return StoreItem{}, false
	}
	return items[key.idx], true
}

// ByKind returns one kind partition in insertion order. The returned
// slice is the store's own; callers must not mutate it.
func (me *Store) ByKind(kind preparse.DefinitionKind) []StoreItem {
	switch kind {
	case preparse.DefMacro:
		return me.macros
	case preparse.DefDef:
		return me.defs
	case preparse.DefEnvironment:
		return me.envs
	}
	return nil
}

// Len is the total number of stored definitions across all kinds.
func (me *Store) Len() int {
	return len(me.macros) + len(me.defs) + len(me.envs)
}
