// Package archive persists fetched device configurations.
//
// Each successful fetch is written to {dir}/{hostname}_{YYYYMMDD_HHMMSS}.cfg.
// The clock is injectable so filenames are deterministic in tests:
//
//	a := archive.New("configs", archive.WithClock(clocktesting.NewFakePassiveClock(t0)))
//	path, err := a.Save(config, device)
//
// Two saves for the same device within one second share a name; the later
// write wins.
package archive
