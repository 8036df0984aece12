// Package inventory loads the list of devices to audit.
//
// The inventory is YAML, either a bare list or a mapping with a devices key:
//
//	- hostname: core-rtr-01
//	  host: 10.0.0.1
//	  device_type: cisco_ios
//	  username: admin
//	  password: s3cret
//
// Entries are not validated; a malformed entry fails when the auditor tries
// to connect to it.
package inventory
