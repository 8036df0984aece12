// Package fetcher retrieves the running configuration of a single device.
//
// A Fetcher opens a session through a connection.Dialer, issues the
// platform's configuration command and closes the session. Failures are
// logged with the device name and returned as ok == false so the caller
// can skip the device and continue with the rest of the inventory:
//
//	f := fetcher.New(dialer, logger)
//	config, ok := f.Fetch(ctx, device)
//	if !ok {
//	    continue
//	}
//
// There is no retry. Timeouts are those of the dialer.
package fetcher
