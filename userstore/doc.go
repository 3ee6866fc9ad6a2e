// Package userstore provides credential lookups backed by SQL databases.
//
// The engine consumes lookups through the sessauth.UserStore interface;
// this package supplies the Postgres implementation. Lookups translate
// sql.ErrNoRows into sessauth.ErrUserNotFound so the engine can keep its
// missing-account and infrastructure-failure paths distinct.
package userstore
