// Package user implements the authentication core: the persistent User
// record, the Store contract over the document database, and the Service
// that orchestrates registration, login, and profile retrieval.
package user
