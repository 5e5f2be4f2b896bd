// Package repository implements data access for the Grand Line API.
//
// User accounts live in a SurrealDB `user` table and are queried through
// the database layer directly. Everything else (characters, crews,
// sessions, forum content, refresh tokens) is a JSON document in the
// generic key-value store; those repositories own their key layout and
// nothing above them builds keys.
//
// Repositories return database/store sentinel errors; services translate
// them into domain errors.
package repository
