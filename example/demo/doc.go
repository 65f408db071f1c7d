// Package demo replays the campus hub walkthrough: seeding people, courses and resources,
// enrolling, transferring credits, borrowing with mentor approval, reporting, and archiving the action logs.
package demo
