// Package tlcfi decodes TLC-FI UpdateState payloads into typed updates
// and maps raw controller state codes onto the closed domain enums.
//
// Ownership boundary:
// - payload shape validation and tick/entry extraction
// - raw state code -> SignalState/DetectorState tables
// - TimestampedChanges construction
package tlcfi
