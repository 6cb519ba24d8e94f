package model

import "time"

// Event represents a schedulable activity stored in the `events`
// table. The content tuple (title, description, location, event
// time) is unique: the schema carries a composite unique key over
// those four columns so two events can never share identical
// content.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – short display title.
//  Description – free text describing the activity.
//  Location    – where the activity takes place.
//  EventTime   – when the activity happens; must be in the future
//                at creation time.
//  CreatedAt   – creation timestamp.
type Event struct {
	ID          uint64    // events.id
	Title       string    // events.title
	Description string    // events.description
	Location    string    // events.location
	EventTime   time.Time // events.event_time
	CreatedAt   time.Time // events.created_at
}
