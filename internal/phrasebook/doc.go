// Package phrasebook persists saved translation results.
//
// Entries are JSON documents keyed by an ISO-8601 timestamp id. SQLite is
// the default backend; Redis and an in-memory store are also available.
// Toggle implements the save/unsave involution used by the result views.
package phrasebook
