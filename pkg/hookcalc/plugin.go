package hookcalc

import "github.com/randalmurphal/hookcalc/pkg/hookcalc/hooks"

// Plugin registers handlers on a calculator's hub. Apply is called once,
// during New, in the order plugins are listed in Config.
type Plugin interface {
	Apply(r hooks.Registrar)
}

// PluginFunc adapts a function to the Plugin interface.
type PluginFunc func(r hooks.Registrar)

// Apply implements Plugin.
func (f PluginFunc) Apply(r hooks.Registrar) {
	f(r)
}

// Operation computes a new value from the current value and the optional
// argument passed to Press.
type Operation func(current, arg float64) float64
