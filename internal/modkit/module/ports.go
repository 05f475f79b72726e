package module

import "reflect"

// PortsOf pulls an interface T out of a module's Ports() bundle without using the registry
// it returns ok=false if neither the bundle nor any exported field implements T
func PortsOf[T any](m Module) (t T, ok bool) {
	if m == nil {
		return t, false
	}
	p := m.Ports()
	if p == nil {
		return t, false
	}
	if v, ok2 := p.(T); ok2 {
		return v, true
	}
	rv := reflect.Indirect(reflect.ValueOf(p))
	if rv.Kind() != reflect.Struct {
		return t, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok2 := f.Interface().(T); ok2 {
			return v, true
		}
	}
	return t, false
}

// MustPortsOf panics naming the module when the port is missing
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	name := "<nil>"
	if m != nil {
		name = m.Name()
	}
	panic("module: requested port not found on module " + name)
}
