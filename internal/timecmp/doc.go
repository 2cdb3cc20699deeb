// Package timecmp converts secondary record descriptors (elapsed-time
// strings, calendar dates) into comparable numeric forms and provides the
// tolerance-based equality tests the matcher scores with.
//
// Parsers never fail: unparseable input reports !ok and contributes zero
// matching signal rather than an error. Tolerances default to two seconds
// for durations (platform re-encoding rounds lengths) and two days for
// dates (publish-vs-upload timestamp skew across platforms).
package timecmp
