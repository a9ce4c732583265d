// Package vlog renders timestamped state changes as VLog3 wire messages.
//
// Every message is one record of upper-case hex digits with no
// separators. The record types produced here:
//
//	01  time reference (absolute date/time anchor)
//	04  identification (protocol version + controller name)
//	06  detector change (CHANGE_DETECTION_INFORMATION)
//	0E  signal change (CHANGE_EXTERNAL_SIGNALGROUP_STATUS_WUS)
//
// Change records carry their time as deciseconds relative to the last
// time reference, which is refreshed every five minutes.
package vlog
