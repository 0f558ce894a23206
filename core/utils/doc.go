// Package utils provides loose value coercion for decoded JSON payloads.
//
// Snapshots arrive from replicas of different app versions, so a counter may be a
// number, a numeric string or garbage. The helpers here never fail: Parse* variants
// report whether a usable value was found, To* variants fall back to the zero value.
package utils
