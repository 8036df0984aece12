// Package golden compares device configurations against a golden template.
//
// The golden file is read from disk on every Compare call. Both texts are
// split into lines that keep their line endings and matched with the
// sequence matcher from github.com/pmezard/go-difflib. The result is a
// unified diff with three lines of context:
//
//	--- templates/golden.cfg
//	+++ device_config
//	@@ -1,3 +1,3 @@
//	-hostname GOLDEN-ROUTER
//	+hostname TEST-ROUTER
//	 !
//	 interface GigabitEthernet0/1
//
// An empty Diff means the configuration matches the template.
//
// Hunk ranges follow the classic unified format: a one-line range is
// printed as a single number and an empty range as "N,0" where N is the
// line before the gap. A final line without a newline is followed by the
// "\ No newline at end of file" marker.
package golden
