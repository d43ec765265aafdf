// Package cli provides the interactive inventory client.
//
// App is a line-oriented REPL in front of the application services: sign in
// or recover a password, browse and maintain products, watch low stock,
// export reports, manage users (admins only) and adjust settings. Every
// command reports its own errors; none of them ends the session.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli
