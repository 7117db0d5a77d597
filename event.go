// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jscan

// An Event is a retained copy of one value report from a Parser. The
// arguments passed to a ValueFunc are snapshots that remain valid after
// the call, so an Event may be stored without further copying.
type Event struct {
	Path  string // location of the value, e.g. $.users[2].name
	Kind  Kind   // shape of the value
	Value string // raw lexed text (meaningful for scalars)
}

// A Recorder is a sink that collects every reported value in document
// order. Its zero value is ready for use.
type Recorder struct {
	Events []Event
}

// Value implements a ValueFunc that appends the event to r.Events.
func (r *Recorder) Value(path string, kind Kind, value string) {
	r.Events = append(r.Events, Event{Path: path, Kind: kind, Value: value})
}
