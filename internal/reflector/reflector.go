// Package reflector derives stable type names used as kind discriminants
// for events and commands. Names are package-path qualified so two types
// with the same short name never collide.
package reflector

import (
	"reflect"
	"sync"
)

var (
	muCache sync.RWMutex
	cache   = make(map[reflect.Type]TypeInfo)
)

type TypeInfo struct {
	Name string
	Type reflect.Type
}

// TypeInfoOf returns the cached type info for x. Pointers share their
// element's name so *T and T yield the same discriminant.
func TypeInfoOf(x any) TypeInfo {
	t := reflect.TypeOf(x)
	if t == nil {
		return TypeInfo{}
	}

	muCache.RLock()
	ti, ok := cache[t]
	muCache.RUnlock()
	if ok {
		return ti
	}

	e := t
	if e.Kind() == reflect.Pointer {
		e = e.Elem()
	}
	ti = TypeInfo{
		Name: e.PkgPath() + "." + e.Name(),
		Type: e,
	}

	muCache.Lock()
	cache[t] = ti
	muCache.Unlock()
	return ti
}
