// Package settings loads the auditor's YAML settings file.
//
// Values are looked up by dotted key with a caller-supplied default, so a
// missing key is never an error:
//
//	s, err := settings.Load("netauditor.yaml")
//	if err != nil {
//	    return err // NOT_FOUND when the file is missing
//	}
//	golden := s.GetString(settings.KeyGoldenFile, "")
//
// Relative paths in the file are resolved against the directory that holds
// the settings file. Archive and report folders stay relative to the
// working directory.
package settings
