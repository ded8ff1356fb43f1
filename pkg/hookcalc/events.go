package hookcalc

// Event names emitted by a Calculator.
const (
	// EventValueWillChange fires before a value change with the requested
	// value. A falsy result from any handler vetoes the change.
	EventValueWillChange = "valueWillChanged"

	// EventValueChanged fires after every SetValue with the value held.
	EventValueChanged = "valueChanged"

	// EventPressedPlus fires on Plus with (current, addend).
	EventPressedPlus = "pressedPlus"

	// EventPressedMinus fires on Minus with (current, subtrahend).
	EventPressedMinus = "pressedMinus"

	// EventPressed fires on Press with the button name. Handlers may return
	// an Operation.
	EventPressed = "pressed"
)
