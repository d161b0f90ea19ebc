package clientinfo

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// Populater stamps resolved client info onto every [Carrier] reachable from a
// value through pointers, interfaces, slices, arrays and maps.
//
// Fields of structs that are not carriers are not traversed.
type Populater struct {
	resolver Resolver
	logger   *slog.Logger
}

// NewPopulater returns a Populater backed by resolver.
func NewPopulater(resolver Resolver, logger *slog.Logger) *Populater {
	return &Populater{resolver: resolver, logger: logger}
}

// Populate walks v and applies the resolved client info to each carrier it
// finds. Pass pointers (or containers of pointers) for struct results; a bare
// struct value cannot be modified. When the resolver returns nil, v is left
// untouched.
func (p *Populater) Populate(ctx context.Context, v any) {
	if v == nil {
		return
	}

	info := p.resolver.Resolve(ctx)
	p.logger.DebugContext(ctx, "populating client info",
		slog.String("type", fmt.Sprintf("%T", v)),
		slog.Any("client_info", info),
	)
	if info == nil {
		return
	}

	w := walker{info: *info, seen: make(map[visitKey]struct{})}
	w.walk(reflect.ValueOf(v))
}

type visitKey struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

type walker struct {
	info ClientInfo
	seen map[visitKey]struct{}
}

// visit records a reference value and reports whether it was new.
func (w *walker) visit(v reflect.Value, n int) bool {
	k := visitKey{ptr: v.Pointer(), typ: v.Type(), n: n}
	if _, ok := w.seen[k]; ok {
		return false
	}
	w.seen[k] = struct{}{}
	return true
}

func (w *walker) walk(v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() || !w.visit(v, 0) {
			return
		}
		if w.apply(v) {
			return
		}
		w.walk(v.Elem())

	case reflect.Interface:
		if v.IsNil() {
			return
		}
		elem := v.Elem()
		if v.CanSet() && byValue(elem.Kind()) {
			cp := addressableCopy(elem)
			w.walk(cp)
			v.Set(cp)
			return
		}
		w.walk(elem)

	case reflect.Slice:
		if v.IsNil() || !w.visit(v, v.Len()) {
			return
		}
		for i := range v.Len() {
			w.walk(v.Index(i))
		}

	case reflect.Array:
		for i := range v.Len() {
			w.walk(v.Index(i))
		}

	case reflect.Map:
		if v.IsNil() || !w.visit(v, 0) {
			return
		}
		w.walkMap(v)

	case reflect.Struct:
		if v.CanAddr() {
			w.apply(v.Addr())
		}

	default:
	}
}

// walkMap updates map values in place. Values held by value are copied,
// populated, and written back.
func (w *walker) walkMap(m reflect.Value) {
	for _, key := range m.MapKeys() {
		val := m.MapIndex(key)
		if !byValue(val.Kind()) && val.Kind() != reflect.Interface {
			w.walk(val)
			continue
		}
		cp := addressableCopy(val)
		w.walk(cp)
		m.SetMapIndex(key, cp)
	}
}

func (w *walker) apply(ptr reflect.Value) bool {
	if !ptr.CanInterface() {
		return false
	}
	c, ok := ptr.Interface().(Carrier)
	if !ok {
		return false
	}
	c.ApplyClientInfo(w.info)
	return true
}

// byValue reports whether a kind stores its elements inline, so that a
// non-addressable value must be copied before carriers inside it can change.
func byValue(k reflect.Kind) bool {
	return k == reflect.Struct || k == reflect.Array
}

func addressableCopy(v reflect.Value) reflect.Value {
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp
}
