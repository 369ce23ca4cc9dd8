// Package cli provides the interactive StudentVerse console.
//
// Guests can register and log in. A successful login yields a
// models.Session which the App keeps as a field and passes explicitly to the
// journal commands:
//   - quiz       answer the question bank, the score is recorded
//   - note/notes write a note, list notes (most recent first)
//   - plan/plans write a study plan, list plans
//   - progress   quiz history plus a summary
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli
