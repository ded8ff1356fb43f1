// Package plugins provides ready-made calculator plugins and a catalog that
// builds them by name from configuration.
//
// The built-in plugins are:
//
//   - Log: prints each plus, minus and result through slog
//   - Limit: vetoes values above a maximum (and optionally below a minimum)
//   - Operators: contributes the squared, multiply, divide, sqrt and negate buttons
//   - Squared: contributes a second squared button
//
// Plugins that contribute the same button are applied cumulatively, so with
// both Operators and Squared installed, pressing "squared" on 5 yields 625.
//
// # Catalog
//
// The catalog maps plugin names to factories so a calculator can be built
// from a config file:
//
//	cat := plugins.NewCatalog(plugins.WithLogger(logger))
//	ps, err := cat.Build(file.Plugins)
//	if err != nil {
//	    return err
//	}
//	calc := hookcalc.New(hookcalc.Config{InitialValue: file.InitialValue, Plugins: ps})
//	defer calc.Close()
package plugins
