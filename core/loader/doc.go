// Package loader registers features and mounts the enabled ones on the Fiber app.
//
//	mgr := loader.NewManager()
//	mgr.Register(day.NewFeature(...))
//	names, err := mgr.LoadAll(app)
package loader
