package domain

import "net/url"

// Arguments holds parsed values in parameter order.
type Arguments struct {
	specs  []ParameterSpec
	values []any
}

func NewArguments(capacity int) *Arguments {
	return &Arguments{
		specs:  make([]ParameterSpec, 0, capacity),
		values: make([]any, 0, capacity),
	}
}

// Bind appends the value for the next parameter slot.
func (a *Arguments) Bind(spec ParameterSpec, value any) {
	a.specs = append(a.specs, spec)
	a.values = append(a.values, value)
}

func (a *Arguments) Len() int {
	return len(a.values)
}

func (a *Arguments) At(i int) any {
	if i < 0 || i >= len(a.values) {
		return nil
	}

	return a.values[i]
}

func (a *Arguments) Get(name string) (any, bool) {
	for i, spec := range a.specs {
		if spec.Name == name {
			return a.values[i], a.values[i] != nil
		}
	}

	return nil, false
}

// Value returns the named argument as T, or the zero value when it is absent or of another type.
func Value[T any](a *Arguments, name string) (T, bool) {
	var zero T

	v, ok := a.Get(name)
	if !ok {
		return zero, false
	}

	t, ok := v.(T)
	return t, ok
}

func (a *Arguments) String(name string) string {
	v, _ := Value[string](a, name)
	return v
}

func (a *Arguments) Int(name string) int {
	v, _ := Value[int](a, name)
	return v
}

func (a *Arguments) Int64(name string) int64 {
	v, _ := Value[int64](a, name)
	return v
}

func (a *Arguments) Float32(name string) float32 {
	v, _ := Value[float32](a, name)
	return v
}

func (a *Arguments) Float64(name string) float64 {
	v, _ := Value[float64](a, name)
	return v
}

func (a *Arguments) Bool(name string) bool {
	v, _ := Value[bool](a, name)
	return v
}

func (a *Arguments) URL(name string) *url.URL {
	v, _ := Value[*url.URL](a, name)
	return v
}

func (a *Arguments) Snowflake(name string) Snowflake {
	v, _ := Value[Snowflake](a, name)
	return v
}

func (a *Arguments) Entity(name string) (Entity, bool) {
	return Value[Entity](a, name)
}

func (a *Arguments) Emoji(name string) (Emoji, bool) {
	return Value[Emoji](a, name)
}

func (a *Arguments) Invite(name string) (Invite, bool) {
	return Value[Invite](a, name)
}
