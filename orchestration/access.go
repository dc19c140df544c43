package orchestration

import (
	"fmt"

	"github.com/npillmayer/otbackend/ir"
)

// AccessFn is a predicate deciding if an artifact may be accessed.
type AccessFn func(AnyWorkId) bool

// AccessNone denies access to everything.
func AccessNone() AccessFn {
	return func(AnyWorkId) bool { return false }
}

// AccessAll grants access to everything.
func AccessAll() AccessFn {
	return func(AnyWorkId) bool { return true }
}

// AccessOneOf grants access to the ids given.
func AccessOneOf(ids ...AnyWorkId) AccessFn {
	set := make(map[AnyWorkId]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id AnyWorkId) bool { return set[id] }
}

// AccessFeKind grants access to all frontend artifacts of a kind.
func AccessFeKind(kind ...ir.WorkKind) AccessFn {
	return func(id AnyWorkId) bool {
		if id.Stage != StageFe {
			return false
		}
		for _, k := range kind {
			if id.Fe.Kind == k {
				return true
			}
		}
		return false
	}
}

// AccessBeKind grants access to all backend artifacts of a kind.
func AccessBeKind(kind ...WorkKind) AccessFn {
	return func(id AnyWorkId) bool {
		if id.Stage != StageBe {
			return false
		}
		for _, k := range kind {
			if id.Be.Kind == k {
				return true
			}
		}
		return false
	}
}

// AccessAny grants access if any of fns does.
func AccessAny(fns ...AccessFn) AccessFn {
	return func(id AnyWorkId) bool {
		for _, fn := range fns {
			if fn(id) {
				return true
			}
		}
		return false
	}
}

// acl holds the access predicates of a context view.
type acl struct {
	read  AccessFn
	write AccessFn
}

func readOnlyACL() acl {
	return acl{read: AccessAll(), write: AccessNone()}
}

func (a acl) assertRead(id AnyWorkId) {
	if !a.read(id) {
		panic(fmt.Sprintf("illegal access: no read access to %s", id))
	}
}

func (a acl) assertWrite(id AnyWorkId) {
	if !a.write(id) {
		panic(fmt.Sprintf("illegal access: no write access to %s", id))
	}
}
