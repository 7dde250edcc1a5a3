// Package monitor arbitrates a dining table: a ring of seats that each need
// both adjacent chopsticks to eat, and a single talking token.
//
// A [Monitor] owns all table state. Philosophers call into it and never read
// or write the state themselves. Seat ids are 1-based.
//
// # Operations
//
//   - [Monitor.PickUp] marks a seat hungry and blocks until it is eating.
//   - [Monitor.PutDown] returns a seat to thinking and lets its neighbors eat.
//   - [Monitor.RequestTalk] blocks until the talking token is free and takes it.
//   - [Monitor.EndTalk] frees the talking token.
//
// A seat starts eating only when neither neighbor is eating, and it is granted
// both chopsticks at once. Nobody ever holds one chopstick while waiting for
// the other, so no circular wait can form and the table cannot deadlock.
//
// # Waiting
//
// Wake-ups are broadcasts: every parked caller re-checks its own condition.
// Blocking calls take a context; a canceled wait returns an error wrapping
// [errors.ErrCanceled] and leaves the table consistent.
//
// # Starvation
//
// Waiting time is not bounded. A hungry seat whose neighbors keep taking turns
// eating can be passed over indefinitely. The monitor does not age requests or
// rotate priority.
package monitor
